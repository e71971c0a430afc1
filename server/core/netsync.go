package core

import (
	"log"

	"github.com/automoto/yeetables/components"
	"github.com/automoto/yeetables/shared/netcomponents"
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/automoto/yeetables/sim"
	"github.com/automoto/yeetables/tags"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

// Tracker marks an entity for network sync. The default is srvsync.
type Tracker func(w donburi.World, e *donburi.Entry) error

func srvsyncTracker(w donburi.World, e *donburi.Entry) error {
	entity := e.Entity()
	switch {
	case e.HasComponent(netcomponents.NetFeedback):
		return srvsync.NetworkSync(w, &entity, netcomponents.NetFeedback)
	case e.HasComponent(netcomponents.NetDisplay):
		return srvsync.NetworkSync(w, &entity,
			srvsync.WithInterp(netcomponents.NetTransform),
			netcomponents.NetDisplay,
		)
	default:
		return srvsync.NetworkSync(w, &entity,
			srvsync.WithInterp(netcomponents.NetTransform),
			netcomponents.NetEntity,
		)
	}
}

// mirror copies simulation state into the synced net components. Entities
// seen for the first time are given net components and tracked.
type mirror struct {
	world *sim.World
	track Tracker
}

func (m *mirror) update() {
	w := m.world.Donburi()

	var fresh []*donburi.Entry
	components.Transform.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetTransform) {
			fresh = append(fresh, e)
		}
	})
	for _, e := range fresh {
		m.attach(e)
	}

	netcomponents.NetTransform.Each(w, func(e *donburi.Entry) {
		m.write(e)
	})
}

func (m *mirror) attach(e *donburi.Entry) {
	donburi.Add(e, netcomponents.NetTransform, &netcomponents.NetTransformData{})
	if e.HasComponent(components.Display) {
		donburi.Add(e, netcomponents.NetDisplay, &netcomponents.NetDisplayData{})
	} else {
		donburi.Add(e, netcomponents.NetEntity, &netcomponents.NetEntityData{Kind: entityKind(e)})
	}
	m.write(e)
	if err := m.track(m.world.Donburi(), e); err != nil {
		log.Printf("[server] Failed to set up network sync for %s: %v", m.world.EntityType(e), err)
	}
}

func (m *mirror) write(e *donburi.Entry) {
	t := components.Transform.Get(e)
	nt := netcomponents.NetTransform.Get(e)
	nt.X, nt.Y, nt.Z = t.Pos.X(), t.Pos.Y(), t.Pos.Z()
	nt.Yaw, nt.Pitch = t.Yaw, t.Pitch
	if e.HasComponent(components.Velocity) {
		v := components.Velocity.Get(e).V
		nt.VX, nt.VY, nt.VZ = v.X(), v.Y(), v.Z()
	}

	if e.HasComponent(netcomponents.NetDisplay) {
		d := components.Display.Get(e)
		nd := netcomponents.NetDisplay.Get(e)
		nd.Kind = entityKind(e)
		nd.Material = d.Material
		if d.Kind == components.ItemDisplay && d.Item != nil {
			nd.Material = d.Item.Material
		}
		nd.Matrix = [16]float64(d.Transform)
		nd.ViewRange = d.ViewRange
		return
	}

	ne := netcomponents.NetEntity.Get(e)
	switch {
	case e.HasComponent(components.Living):
		living := components.Living.Get(e)
		ne.Name = living.Kind
		if e.HasComponent(components.Player) {
			ne.Name = components.Player.Get(e).Name
		}
		ne.Health, ne.MaxHealth = living.Health, living.MaxHealth
		ne.Dead = living.Dead
		ne.OnFire = living.FireTicks > 0
	case e.HasComponent(components.Projectile):
		ne.Item = ""
		if item := components.Projectile.Get(e).Item; item != nil {
			ne.Item = item.Material
		}
	case e.HasComponent(components.ItemDrop):
		ne.Item = components.ItemDrop.Get(e).Item.Material
	}
}

func entityKind(e *donburi.Entry) netconfig.EntityKind {
	switch {
	case e.HasComponent(tags.Player):
		return netconfig.KindPlayer
	case e.HasComponent(tags.Mob):
		return netconfig.KindMob
	case e.HasComponent(tags.Snowball):
		return netconfig.KindSnowball
	case e.HasComponent(tags.Arrow):
		return netconfig.KindArrow
	case e.HasComponent(tags.SmallFireball):
		return netconfig.KindSmallFireball
	case e.HasComponent(tags.BlockDisplay):
		return netconfig.KindBlockDisplay
	case e.HasComponent(tags.ItemDisplay):
		return netconfig.KindItemDisplay
	case e.HasComponent(tags.ItemDrop):
		return netconfig.KindItemDrop
	case e.HasComponent(tags.GrappleAnchor):
		return netconfig.KindLeashAnchor
	}
	return netconfig.KindUnknown
}
