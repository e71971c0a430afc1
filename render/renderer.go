// Package render keeps display-entity models glued to the projectiles that
// carry them. A renderer rides its carrier, re-applies the definition's gravity
// multiplier and re-orients its parts every tick until the carrier is gone.
package render

import (
	"math"

	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/scheduler"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

var forward = mgl64.Vec3{0, 0, 1}

type part struct {
	entity donburi.Entity
	base   mgl64.Mat4
}

// Renderer is one live visual rig attached to a carrier projectile.
type Renderer struct {
	id       int
	world    *sim.World
	registry *Registry
	carrier  donburi.Entity

	// root rides the carrier. For block composites it is an invisible display
	// the parts ride; for item renders it is the only part.
	root  donburi.Entity
	parts []part

	rotation        definitions.RotationMode
	yawOffset       float64
	pitchOffset     float64
	yawMultiplier   float64
	pitchMultiplier float64
	gravityMult     float64

	life    int
	lastDir mgl64.Vec3

	spinAxis mgl64.Vec3
	spin     *gween.Tween

	pending *scheduler.Task
	task    *scheduler.Task
	removed bool
}

func (r *Renderer) ID() int { return r.id }

// Removed reports whether the rig has been torn down.
func (r *Renderer) Removed() bool { return r.removed }

// Parts returns the display entities that make up the model.
func (r *Renderer) Parts() []donburi.Entity {
	out := make([]donburi.Entity, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, p.entity)
	}
	return out
}

// Root returns the display entity that rides the carrier.
func (r *Renderer) Root() donburi.Entity { return r.root }

func newRenderer(reg *Registry, carrier *donburi.Entry, gravityMult float64) *Renderer {
	return &Renderer{
		world:           reg.world,
		registry:        reg,
		carrier:         carrier.Entity(),
		gravityMult:     gravityMult,
		life:            cfg.Render.LifetimeTicks,
		lastDir:         forward,
		yawMultiplier:   1,
		pitchMultiplier: 1,
	}
}

// spawnBlocks creates the invisible root and one block display per part at
// the carrier's location, each starting at its base transform.
func (r *Renderer) spawnBlocks(spec definitions.BlockDisplayRender) {
	pos, _ := r.world.Location(r.world.Entry(r.carrier))
	r.rotation = spec.Rotation
	r.yawOffset, r.pitchOffset = spec.YawOffset, spec.PitchOffset
	r.yawMultiplier, r.pitchMultiplier = spec.YawMultiplier, spec.PitchMultiplier

	r.root = r.world.SpawnBlockDisplay(pos, "air", mgl64.Ident4()).Entity()
	for _, p := range spec.Parts {
		e := r.world.SpawnBlockDisplay(pos, p.Material, p.Transform)
		r.parts = append(r.parts, part{entity: e.Entity(), base: p.Transform})
	}
}

// spawnItem creates the single item display. Item renders ignore yaw and pitch
// offsets.
func (r *Renderer) spawnItem(spec definitions.ItemDisplayRender) {
	pos, _ := r.world.Location(r.world.Entry(r.carrier))
	r.rotation = spec.Rotation
	r.root = r.world.SpawnItemDisplay(pos, &spec.Item, spec.Transform).Entity()
	r.parts = []part{{entity: r.root, base: spec.Transform}}
}

func (r *Renderer) start() {
	if r.rotation == definitions.SpinRandom {
		rnd := r.world.Rand()
		axis := mgl64.Vec3{rnd.Float64() - 0.5, rnd.Float64() - 0.5, rnd.Float64() - 0.5}
		if axis.LenSqr() < 1e-12 {
			axis = mgl64.Vec3{0, 1, 0}
		}
		r.spinAxis = axis.Normalize()
		turn := float32(2 * math.Pi)
		r.spin = gween.New(0, turn, turn/float32(cfg.Render.SpinSpeed), ease.Linear)
	}

	// Displays are assembled one tick after they are created.
	r.pending = r.world.Scheduler().RunLater(1, r.attach)
}

func (r *Renderer) attach() {
	r.pending = nil
	if r.removed {
		return
	}
	carrier := r.world.Entry(r.carrier)
	if !r.world.IsAlive(carrier) {
		r.Remove()
		return
	}
	root := r.world.Entry(r.root)
	for _, p := range r.parts {
		if p.entity != r.root {
			r.world.Mount(r.world.Entry(p.entity), root)
		}
	}
	r.world.Mount(root, carrier)

	dir, _ := r.world.Velocity(carrier)
	if dir.LenSqr() < cfg.Render.DegenerateEpsilon {
		dir, _ = r.world.Direction(carrier)
	}
	r.applyRotation(dir)

	// The first update runs in the attach tick; the timer takes over from the
	// next one.
	r.update()
	if !r.removed {
		r.task = r.world.Scheduler().RunTimer(1, 1, r.tick)
	}
}

func (r *Renderer) tick(*scheduler.Task) { r.update() }

func (r *Renderer) update() {
	carrier := r.world.Entry(r.carrier)
	r.life--
	if r.life < 0 || !r.world.IsAlive(carrier) {
		r.Remove()
		return
	}

	vel, _ := r.world.Velocity(carrier)
	vel[1] += cfg.Render.NormalGravity * (r.gravityMult - 1)
	r.world.SetVelocity(carrier, vel)

	r.applyRotation(vel)
}

// rotationMatrix returns the frame rotation for this tick. dir may be zero.
func (r *Renderer) rotationMatrix(dir mgl64.Vec3) mgl64.Mat4 {
	switch r.rotation {
	case definitions.SpinRandom:
		angle, done := r.spin.Update(1)
		if done {
			r.spin.Reset()
		}
		return mgl64.HomogRotate3D(float64(angle), r.spinAxis)
	case definitions.RotationNone:
		return mgl64.Ident4()
	}

	v := dir
	if v.LenSqr() < cfg.Render.DegenerateEpsilon {
		v = r.lastDir
	}
	if v.LenSqr() < cfg.Render.DegenerateEpsilon {
		v = forward
	}
	n := v.Normalize()
	r.lastDir = n

	yawDeg, pitchDeg := gamemath.YawPitch(n)
	yaw := mgl64.DegToRad(r.yawMultiplier*yawDeg + r.yawOffset)
	pitch := mgl64.DegToRad(r.pitchMultiplier*pitchDeg + r.pitchOffset)
	return mgl64.HomogRotate3DY(yaw).Mul4(mgl64.HomogRotate3DX(pitch))
}

func (r *Renderer) applyRotation(dir mgl64.Vec3) {
	rot := r.rotationMatrix(dir)
	for _, p := range r.parts {
		r.world.SetDisplayTransform(r.world.Entry(p.entity), rot.Mul4(p.base))
	}
}

// Remove cancels the update task and despawns every display. Calling it
// again does nothing.
func (r *Renderer) Remove() {
	if r.removed {
		return
	}
	r.removed = true
	r.registry.forget(r.id)

	r.pending.Cancel()
	r.task.Cancel()
	r.pending, r.task = nil, nil

	r.world.Dismount(r.world.Entry(r.root))
	for _, p := range r.parts {
		r.world.Remove(r.world.Entry(p.entity))
	}
	r.world.Remove(r.world.Entry(r.root))
}
