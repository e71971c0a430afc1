package tags

import "github.com/yohamta/donburi"

var (
	Player        = donburi.NewTag().SetName("Player")
	Mob           = donburi.NewTag().SetName("Mob")
	Snowball      = donburi.NewTag().SetName("Snowball")
	Arrow         = donburi.NewTag().SetName("Arrow")
	SmallFireball = donburi.NewTag().SetName("SmallFireball")
	BlockDisplay  = donburi.NewTag().SetName("BlockDisplay")
	ItemDisplay   = donburi.NewTag().SetName("ItemDisplay")
	GrappleAnchor = donburi.NewTag().SetName("GrappleAnchor")
	ItemDrop      = donburi.NewTag().SetName("ItemDrop")
)

// Resolv tags for the entity broadphase
const (
	ResolvLiving     = "living"
	ResolvProjectile = "projectile"
)
