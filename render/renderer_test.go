package render

import (
	"math"
	"testing"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

func spawnCarrier(w *sim.World, vel mgl64.Vec3) *donburi.Entry {
	return w.SpawnProjectile(components.Snowball, nil, mgl64.Vec3{16, 100, 16}, vel, nil)
}

func blockSpec(rot definitions.RotationMode) definitions.BlockDisplayRender {
	return definitions.BlockDisplayRender{
		Parts: []definitions.ModelPart{
			{Material: "oak_planks", Transform: mgl64.Translate3D(-0.5, 0, -0.5)},
			{Material: "stone", Transform: mgl64.Scale3D(0.5, 0.5, 0.5)},
		},
		YawMultiplier:   1,
		PitchMultiplier: 1,
		Rotation:        rot,
	}
}

func displayTransform(w *sim.World, id donburi.Entity) mgl64.Mat4 {
	return components.Display.Get(w.Entry(id)).Transform
}

func TestSimpleRenderSpawnsNothing(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	if r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 1}), definitions.SimpleRender{Material: "snowball"}, 1); r != nil {
		t.Fatalf("simple render created a renderer")
	}
	if reg.Len() != 0 {
		t.Fatalf("registry len = %d", reg.Len())
	}
}

func TestIDsAreMonotonic(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	a := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 1}), blockSpec(definitions.RotationNone), 1)
	b := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 1}), blockSpec(definitions.RotationNone), 1)
	if a.ID() != 1 || b.ID() != 2 {
		t.Fatalf("ids = %d, %d", a.ID(), b.ID())
	}
	reg.Release(a.ID())
	c := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 1}), blockSpec(definitions.RotationNone), 1)
	if c.ID() != 3 {
		t.Fatalf("id after release = %d, want 3", c.ID())
	}
	if reg.Get(a.ID()) != nil {
		t.Fatalf("released renderer still registered")
	}
}

func TestAttachAfterOneTick(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	carrier := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	r := reg.Spawn(carrier, blockSpec(definitions.RotationNone), 1)

	if w.Vehicle(w.Entry(r.Root())) != nil {
		t.Fatalf("root mounted before the first tick")
	}
	w.Tick()
	if v := w.Vehicle(w.Entry(r.Root())); v == nil || v.Entity() != carrier.Entity() {
		t.Fatalf("root not riding the carrier")
	}
	for _, p := range r.Parts() {
		if v := w.Vehicle(w.Entry(p)); v == nil || v.Entity() != r.Root() {
			t.Fatalf("part not riding the root")
		}
	}
}

func TestPartTransformIsRotationTimesBase(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	spec := blockSpec(definitions.PointForward)
	spec.YawOffset = 90
	r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 0.5}), spec, 1)

	// The scheduler runs before physics, so the attach sees the launch velocity.
	w.Tick()

	rot := mgl64.HomogRotate3DY(mgl64.DegToRad(90)).Mul4(mgl64.HomogRotate3DX(0))
	for i, p := range r.Parts() {
		want := rot.Mul4(spec.Parts[i].Transform)
		if got := displayTransform(w, p); !got.ApproxEqualThreshold(want, 1e-9) {
			t.Fatalf("part %d transform = %v, want %v", i, got, want)
		}
	}
}

func TestPointForwardAngles(t *testing.T) {
	r := &Renderer{rotation: definitions.PointForward, yawMultiplier: 1, pitchMultiplier: 1, lastDir: forward}

	got := r.rotationMatrix(mgl64.Vec3{1, 0, 0})
	want := mgl64.HomogRotate3DY(mgl64.DegToRad(-90))
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("+x rotation = %v, want yaw -90", got)
	}

	got = r.rotationMatrix(mgl64.Vec3{0, -1, 0})
	want = mgl64.HomogRotate3DX(mgl64.DegToRad(90))
	if !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("falling rotation = %v, want pitch 90", got)
	}
}

func TestZeroVelocityReusesLastDirection(t *testing.T) {
	r := &Renderer{rotation: definitions.PointForward, yawMultiplier: 1, pitchMultiplier: 1, lastDir: forward}

	first := r.rotationMatrix(mgl64.Vec3{0.3, 0.2, -0.4})
	for i := 0; i < 3; i++ {
		got := r.rotationMatrix(mgl64.Vec3{})
		if !got.ApproxEqualThreshold(first, 1e-12) {
			t.Fatalf("tick %d with zero velocity changed orientation", i)
		}
	}
	if r.lastDir.Sub(mgl64.Vec3{0.3, 0.2, -0.4}.Normalize()).Len() > 1e-12 {
		t.Fatalf("last direction = %v", r.lastDir)
	}
}

func TestRotationNoneKeepsBase(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	spec := blockSpec(definitions.RotationNone)
	r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0.3, 0.1, 0.5}), spec, 1)
	for i := 0; i < 3; i++ {
		w.Tick()
	}
	for i, p := range r.Parts() {
		if got := displayTransform(w, p); !got.ApproxEqualThreshold(spec.Parts[i].Transform, 1e-12) {
			t.Fatalf("part %d moved off its base transform", i)
		}
	}
}

func TestSpinRandomRotates(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	item := definitions.ItemDisplayRender{
		Item:      components.ItemStack{Material: "slime_ball", Amount: 1},
		Transform: mgl64.Ident4(),
		Rotation:  definitions.SpinRandom,
	}
	r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 0.5}), item, 1)

	w.Tick()
	before := displayTransform(w, r.Root())
	w.Tick()
	after := displayTransform(w, r.Root())
	if before.ApproxEqualThreshold(after, 1e-9) {
		t.Fatalf("spin did not advance")
	}
	if det := after.Det(); math.Abs(det-1) > 1e-9 {
		t.Fatalf("spin matrix determinant = %v, want 1", det)
	}
	if math.Abs(r.spinAxis.Len()-1) > 1e-9 {
		t.Fatalf("spin axis not normalized: %v", r.spinAxis)
	}
}

func TestItemRenderIgnoresOffsets(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	base := mgl64.Scale3D(0.6, 0.6, 0.6)
	r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 0.5}), definitions.ItemDisplayRender{
		Item:      components.ItemStack{Material: "blaze_rod", Amount: 1},
		Transform: base,
	}, 1)
	w.Tick()
	if got := displayTransform(w, r.Root()); !got.ApproxEqualThreshold(base, 1e-9) {
		t.Fatalf("item transform = %v, want base", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	r := reg.Spawn(spawnCarrier(w, mgl64.Vec3{0, 0, 0.5}), blockSpec(definitions.PointForward), 1)
	w.Tick()
	parts := r.Parts()

	r.Remove()
	r.Remove()
	reg.Release(r.ID())

	if !r.Removed() || reg.Len() != 0 {
		t.Fatalf("renderer still live")
	}
	if w.Exists(r.Root()) {
		t.Fatalf("root survived removal")
	}
	for _, p := range parts {
		if w.Exists(p) {
			t.Fatalf("part survived removal")
		}
	}
	if n := w.Scheduler().Pending(); n != 0 {
		t.Fatalf("pending tasks = %d, want 0", n)
	}
}

func TestCarrierDeathRemovesRenderer(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	carrier := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	r := reg.Spawn(carrier, blockSpec(definitions.PointForward), 1)
	w.Tick()

	w.Remove(carrier)
	w.Tick()
	if !r.Removed() {
		t.Fatalf("renderer outlived its carrier")
	}
	if w.Exists(r.Root()) {
		t.Fatalf("root survived carrier death")
	}
}

func TestCarrierGoneBeforeAttach(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	carrier := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	r := reg.Spawn(carrier, blockSpec(definitions.PointForward), 1)
	w.Remove(carrier)
	w.Tick()
	if !r.Removed() || reg.Len() != 0 {
		t.Fatalf("renderer attached to a removed carrier")
	}
}

func TestLifetimeLimit(t *testing.T) {
	old := cfg.Render.LifetimeTicks
	cfg.Render.LifetimeTicks = 3
	defer func() { cfg.Render.LifetimeTicks = old }()

	w := sim.New()
	reg := NewRegistry(w)
	carrier := spawnCarrier(w, mgl64.Vec3{0, 0, 0.1})
	r := reg.Spawn(carrier, blockSpec(definitions.PointForward), 1)

	// The attach tick counts as the first of the three.
	for i := 0; i < 3; i++ {
		w.Tick()
	}
	if r.Removed() {
		t.Fatalf("renderer removed early")
	}
	w.Tick()
	if !r.Removed() {
		t.Fatalf("renderer outlived its lifetime")
	}
	if !w.IsAlive(carrier) {
		t.Fatalf("lifetime removed the carrier too")
	}
}

func TestGravityMultiplier(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	floaty := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	control := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	reg.Spawn(floaty, blockSpec(definitions.PointForward), 0)
	reg.Spawn(control, blockSpec(definitions.PointForward), 1)

	for i := 0; i < 3; i++ {
		w.Tick()
	}
	fv, _ := w.Velocity(floaty)
	cv, _ := w.Velocity(control)
	if fv.Y() <= cv.Y() {
		t.Fatalf("multiplier 0 fell as fast as the default: %v vs %v", fv.Y(), cv.Y())
	}
	// Three adjusted ticks of +0.04, starting with the attach tick, each
	// damped by drag once per tick that follows it.
	d := cfg.Projectile.Drag
	want := 0.04*d + 0.04*d*d + 0.04*d*d*d
	if math.Abs(fv.Y()-cv.Y()-want) > 1e-9 {
		t.Fatalf("vy difference = %v, want %v", fv.Y()-cv.Y(), want)
	}
}

func TestGravityAppliedInAttachTick(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	floaty := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	control := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	reg.Spawn(floaty, blockSpec(definitions.PointForward), 0)
	reg.Spawn(control, blockSpec(definitions.PointForward), 1)

	w.Tick()
	fv, _ := w.Velocity(floaty)
	cv, _ := w.Velocity(control)
	if want := 0.04 * cfg.Projectile.Drag; math.Abs(fv.Y()-cv.Y()-want) > 1e-9 {
		t.Fatalf("vy difference after attach tick = %v, want %v", fv.Y()-cv.Y(), want)
	}
}

func TestRemoveLeavesReusedSlotsAlone(t *testing.T) {
	w := sim.New()
	reg := NewRegistry(w)
	carrier := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	r := reg.Spawn(carrier, blockSpec(definitions.PointForward), 1)
	w.Tick()

	// Free the carrier and root, then let new entities take their slots.
	w.Remove(carrier)
	w.Remove(w.Entry(r.Root()))
	a := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})
	b := spawnCarrier(w, mgl64.Vec3{0, 0, 0.5})

	w.Tick()
	if !r.Removed() {
		t.Fatalf("renderer survived its carrier")
	}
	if !w.IsAlive(a) || !w.IsAlive(b) {
		t.Fatalf("teardown removed entities that reused freed slots")
	}
}
