package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalizeOr returns v scaled to unit length, or fallback when v is too short
// to normalize.
func NormalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() < 1e-12 {
		return fallback
	}
	return v.Normalize()
}

// PerturbDirection adds a uniform offset in [-offset/2, offset/2) to each axis
// and re-normalizes. A non-positive offset returns dir untouched. rnd must
// return values in [0, 1).
func PerturbDirection(dir mgl64.Vec3, offset float64, rnd func() float64) mgl64.Vec3 {
	if offset <= 0 {
		return dir
	}
	p := mgl64.Vec3{
		dir.X() + (rnd()-0.5)*offset,
		dir.Y() + (rnd()-0.5)*offset,
		dir.Z() + (rnd()-0.5)*offset,
	}
	return NormalizeOr(p, dir)
}

// YawPitch returns the yaw and pitch in degrees that point along dir.
func YawPitch(dir mgl64.Vec3) (yaw, pitch float64) {
	yaw = mgl64.RadToDeg(math.Atan2(-dir.X(), dir.Z()))
	pitch = mgl64.RadToDeg(math.Atan2(-dir.Y(), math.Hypot(dir.X(), dir.Z())))
	return yaw, pitch
}

// PullVelocity returns the velocity that yanks something at from toward to:
// magnitude min(strength*sqrt(distance), maxSpeed) with the vertical
// component raised to at least minY.
func PullVelocity(from, to mgl64.Vec3, strength, maxSpeed, minY float64) mgl64.Vec3 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist < 1e-9 {
		return mgl64.Vec3{0, minY, 0}
	}
	speed := math.Min(strength*math.Sqrt(dist), maxSpeed)
	v := delta.Mul(speed / dist)
	v[1] = math.Max(v[1], minY)
	return v
}

// Knockback returns the impulse applied to a struck target. The direction is
// the projectile's velocity, or the projectile→target vector when the velocity
// is degenerate. The vertical component is floored at vertical, not added.
func Knockback(vel, projectilePos, targetPos mgl64.Vec3, strength, vertical, degenerateSq float64) mgl64.Vec3 {
	dir := vel
	if dir.LenSqr() < degenerateSq {
		dir = targetPos.Sub(projectilePos)
	}
	kb := NormalizeOr(dir, mgl64.Vec3{}).Mul(strength)
	kb[1] = math.Max(kb[1], vertical)
	return kb
}

// MatrixFromRowMajor builds a transform from sixteen row-major values, the
// layout definition files use.
func MatrixFromRowMajor(a [16]float64) mgl64.Mat4 {
	return mgl64.Mat4(a).Transpose()
}
