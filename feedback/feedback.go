// Package feedback is the boundary to whatever shows sounds and particles to
// players. The throwable core decides when and with what; a Sink decides how.
package feedback

import "github.com/go-gl/mathgl/mgl64"

//go:generate go tool mockgen -destination=./mocks/sink_mock.go -package=mocks . Sink

// Sink receives sound and particle requests at world positions.
type Sink interface {
	PlaySound(at mgl64.Vec3, sound string, volume, pitch float64)
	SpawnParticles(at mgl64.Vec3, material string, count int, spread, speed float64)
}

// Nop discards everything.
type Nop struct{}

func (Nop) PlaySound(mgl64.Vec3, string, float64, float64)           {}
func (Nop) SpawnParticles(mgl64.Vec3, string, int, float64, float64) {}
