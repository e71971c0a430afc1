package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// DisplayKind selects what a display entity shows.
type DisplayKind int

const (
	BlockDisplay DisplayKind = iota
	ItemDisplay
)

// DisplayData is a non-colliding visual entity with a free transformation.
type DisplayData struct {
	Kind      DisplayKind
	Material  string     // Block displays
	Item      *ItemStack // Item displays
	Transform mgl64.Mat4
	ViewRange float64
}

var Display = donburi.NewComponentType[DisplayData]()

// MountData attaches a passenger to its vehicle; the passenger follows the
// vehicle's position every tick.
type MountData struct {
	Vehicle donburi.Entity
}

var Mount = donburi.NewComponentType[MountData]()

// LeashData ties an entity to its holder with a lead.
type LeashData struct {
	Holder donburi.Entity
}

var Leash = donburi.NewComponentType[LeashData]()

// ItemDropData is an item lying in the world.
type ItemDropData struct {
	Item ItemStack
}

var ItemDrop = donburi.NewComponentType[ItemDropData]()

// AutoDestroyData removes an entity after a number of ticks.
type AutoDestroyData struct {
	TicksRemaining int
}

var AutoDestroy = donburi.NewComponentType[AutoDestroyData]()
