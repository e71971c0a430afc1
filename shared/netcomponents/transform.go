package netcomponents

import "github.com/yohamta/donburi"

// NetTransformData is an entity's position, look and velocity in blocks.
type NetTransformData struct {
	X, Y, Z    float64
	Yaw, Pitch float64
	VX, VY, VZ float64 // Client extrapolation between snapshots
}

var NetTransform = donburi.NewComponentType[NetTransformData]()

// LerpNetTransform interpolates position; look and velocity snap to the newer
// state.
func LerpNetTransform(from, to NetTransformData, t float64) *NetTransformData {
	return &NetTransformData{
		X:     from.X + (to.X-from.X)*t,
		Y:     from.Y + (to.Y-from.Y)*t,
		Z:     from.Z + (to.Z-from.Z)*t,
		Yaw:   to.Yaw,
		Pitch: to.Pitch,
		VX:    to.VX,
		VY:    to.VY,
		VZ:    to.VZ,
	}
}
