package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// BodyData is a collidable entity's box. Object is its footprint in the
// broadphase space (X/Z plane); the vertical extent is checked separately.
type BodyData struct {
	Width    float64
	Height   float64
	OnGround bool
	*resolv.Object
}

var Body = donburi.NewComponentType[BodyData]()
