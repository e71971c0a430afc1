package archetypes

import (
	"github.com/automoto/yeetables/components"
	"github.com/automoto/yeetables/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Living,
		components.Transform,
		components.Velocity,
		components.Body,
	)
	Mob = newArchetype(
		tags.Mob,
		components.Living,
		components.Transform,
		components.Velocity,
		components.Body,
	)
	Snowball = newArchetype(
		tags.Snowball,
		components.Projectile,
		components.Transform,
		components.Velocity,
		components.Body,
	)
	Arrow = newArchetype(
		tags.Arrow,
		components.Projectile,
		components.Transform,
		components.Velocity,
		components.Body,
	)
	SmallFireball = newArchetype(
		tags.SmallFireball,
		components.Projectile,
		components.Transform,
		components.Velocity,
		components.Body,
	)
	BlockDisplay = newArchetype(
		tags.BlockDisplay,
		components.Display,
		components.Transform,
		components.Mount,
	)
	ItemDisplay = newArchetype(
		tags.ItemDisplay,
		components.Display,
		components.Transform,
		components.Mount,
	)
	GrappleAnchor = newArchetype(
		tags.GrappleAnchor,
		components.Transform,
		components.Leash,
	)
	ItemDrop = newArchetype(
		tags.ItemDrop,
		components.ItemDrop,
		components.Transform,
		components.Velocity,
		components.AutoDestroy,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
