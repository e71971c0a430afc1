package components

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TransformData is an entity's location and look direction. Yaw and pitch are
// in degrees; yaw 0 faces +Z, pitch 90 faces straight down.
type TransformData struct {
	Pos   mgl64.Vec3
	Yaw   float64
	Pitch float64
}

// Direction returns the unit look vector.
func (t *TransformData) Direction() mgl64.Vec3 {
	yaw := mgl64.DegToRad(t.Yaw)
	pitch := mgl64.DegToRad(t.Pitch)
	xz := math.Cos(pitch)
	return mgl64.Vec3{-xz * math.Sin(yaw), -math.Sin(pitch), xz * math.Cos(yaw)}
}

// LookAlong points the transform along dir. A zero vector leaves it unchanged.
func (t *TransformData) LookAlong(dir mgl64.Vec3) {
	if dir.LenSqr() == 0 {
		return
	}
	t.Yaw = mgl64.RadToDeg(math.Atan2(-dir.X(), dir.Z()))
	t.Pitch = mgl64.RadToDeg(math.Atan2(-dir.Y(), math.Hypot(dir.X(), dir.Z())))
}

var Transform = donburi.NewComponentType[TransformData]()

type VelocityData struct {
	V mgl64.Vec3
}

var Velocity = donburi.NewComponentType[VelocityData]()
