package components

import (
	"github.com/yohamta/donburi"
)

// ProjectileKind is the physical carrier type.
type ProjectileKind int

const (
	Snowball ProjectileKind = iota
	Arrow
	SmallFireball
)

func (k ProjectileKind) String() string {
	switch k {
	case Snowball:
		return "snowball"
	case Arrow:
		return "arrow"
	case SmallFireball:
		return "small_fireball"
	}
	return "unknown"
}

type ProjectileData struct {
	Kind       ProjectileKind
	Shooter    donburi.Entity
	Item       *ItemStack // Visible item; nil renders nothing
	Gravity    float64
	Drag       float64
	Age        int
	Incendiary bool
	NoPickup   bool // Arrows: cannot be collected after landing
}

var Projectile = donburi.NewComponentType[ProjectileData]()

// YeetTagData marks a projectile as managed by a throwable definition. It
// lives exactly as long as the carrier entity.
type YeetTagData struct {
	DefinitionID string
	HasBounces   bool
	Bounces      int
	RendererID   int // 0 when no renderer is attached
}

var YeetTag = donburi.NewComponentType[YeetTagData]()
