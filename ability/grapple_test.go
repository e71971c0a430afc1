package ability

import (
	"math"
	"testing"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/sim"
	"github.com/automoto/yeetables/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

type grappleFixture struct {
	world    *sim.World
	grapples *Grapples
	player   *donburi.Entry
	crossbow *components.ItemStack
}

func newGrappleFixture(t *testing.T) *grappleFixture {
	t.Helper()
	w := sim.NewFlat(16, 16)
	player := w.SpawnPlayer(uuid.New(), "hooker", mgl64.Vec3{8, 1, 2})
	crossbow := &components.ItemStack{Material: "crossbow", Amount: 1, DisplayName: "Grappling Hook", Charged: true}
	components.Player.Get(player).Hotbar[0] = crossbow
	return &grappleFixture{world: w, grapples: NewGrapples(w), player: player, crossbow: crossbow}
}

func (f *grappleFixture) fire(opts definitions.Options) (*GrappleSession, *donburi.Entry) {
	hook := f.world.SpawnProjectile(components.Arrow, f.player, mgl64.Vec3{8, 10, 2}, mgl64.Vec3{0, 0, 0.1}, nil)
	return f.grapples.Launch(f.player, hook, 0, opts), hook
}

func countDrops(w *sim.World) int {
	n := 0
	tags.ItemDrop.Each(w.Donburi(), func(*donburi.Entry) { n++ })
	return n
}

func TestGrappleLaunch(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(nil)

	if f.grapples.Active(s.PlayerID) != s || f.grapples.Len() != 1 {
		t.Fatalf("session not registered")
	}
	if f.crossbow.Charged {
		t.Fatalf("crossbow still charged during the session")
	}
	if f.world.LeashHolder(f.world.Entry(s.Anchor())) != f.player {
		t.Fatalf("anchor not leashed to the player")
	}

	f.world.Tick()
	if s.State() != GrappleTracking {
		t.Fatalf("state = %s, want tracking", s.State())
	}
	hookPos, _ := f.world.Location(hook)
	anchorPos, _ := f.world.Location(f.world.Entry(s.Anchor()))
	// The anchor is placed before physics moves the hook this tick.
	if math.Abs(anchorPos.Y()-(hookPos.Y()+cfg.Grapple.AnchorOffsetY)) > 0.2 {
		t.Fatalf("anchor %v not tracking hook %v", anchorPos, hookPos)
	}
}

func TestGrappleRelaunchTearsDownFirst(t *testing.T) {
	f := newGrappleFixture(t)
	first, hook := f.fire(nil)
	f.world.Tick()
	firstHook, firstAnchor := hook.Entity(), first.Anchor()

	second, _ := f.fire(nil)

	if first.State() != GrappleAborted {
		t.Fatalf("first state = %s, want aborted", first.State())
	}
	if f.world.Exists(firstAnchor) || f.world.Exists(firstHook) {
		t.Fatalf("first session left entities behind")
	}
	if f.grapples.Len() != 1 || f.grapples.Active(first.PlayerID) != second {
		t.Fatalf("sessions = %d, want only the second", f.grapples.Len())
	}
	// Restored by the teardown, then unloaded again by the new launch.
	if f.crossbow.Charged || !second.unloaded {
		t.Fatalf("second launch did not unload the restored crossbow")
	}
	if countDrops(f.world) != 0 {
		t.Fatalf("teardown dropped a lead")
	}

	// The first session's task must not run again.
	for i := 0; i < 3; i++ {
		f.world.Tick()
	}
	if first.age != 1 {
		t.Fatalf("first session kept ticking: age %d", first.age)
	}
}

func TestGrappleSelfHit(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(nil)
	before, _ := f.world.Velocity(f.player)

	ev := &sim.HitEvent{Projectile: hook, HitEntity: f.player, Location: mgl64.Vec3{8, 1, 2}}
	if !f.grapples.OnHookHit(ev) {
		t.Fatalf("own hook not recognized")
	}
	if !ev.Cancelled() {
		t.Fatalf("self-hit not cancelled")
	}
	if !f.world.Valid(hook) || f.grapples.Active(s.PlayerID) != s {
		t.Fatalf("self-hit ended the session")
	}
	if after, _ := f.world.Velocity(f.player); after != before {
		t.Fatalf("self-hit pulled the player")
	}
}

func TestGrappleResolve(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(definitions.Options{"pull-strength": 0.6})
	hookID, anchor := hook.Entity(), s.Anchor()

	ev := &sim.HitEvent{
		Projectile: hook,
		HitBlock:   &sim.BlockPos{X: 8, Y: 1, Z: 10},
		Location:   mgl64.Vec3{8, 1, 10},
	}
	if !f.grapples.OnHookHit(ev) {
		t.Fatalf("hook hit not handled")
	}

	vel, _ := f.world.Velocity(f.player)
	want := mgl64.Vec3{0, cfg.Grapple.MinVerticalPull, 0.6 * math.Sqrt(8)}
	if !vel.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("pull = %v, want %v", vel, want)
	}
	if s.State() != GrappleResolved || f.grapples.Len() != 0 {
		t.Fatalf("session not resolved")
	}
	if f.world.Exists(hookID) || f.world.Exists(anchor) {
		t.Fatalf("resolution left entities behind")
	}
	if !f.crossbow.Charged {
		t.Fatalf("crossbow not reloaded")
	}
	if countDrops(f.world) != 0 {
		t.Fatalf("resolution dropped a lead")
	}
}

func TestGrapplePullIsCapped(t *testing.T) {
	f := newGrappleFixture(t)
	_, hook := f.fire(definitions.Options{"pull-strength": 5.0})
	f.grapples.OnHookHit(&sim.HitEvent{Projectile: hook, HitBlock: &sim.BlockPos{X: 8, Y: 1, Z: 14}, Location: mgl64.Vec3{8, 1, 14}})

	vel, _ := f.world.Velocity(f.player)
	if math.Abs(vel.Z()-cfg.Grapple.MaxPullSpeed) > 1e-9 {
		t.Fatalf("pull z = %v, want %v", vel.Z(), cfg.Grapple.MaxPullSpeed)
	}
}

func TestGrappleTimeout(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(definitions.Options{"timeout-ticks": 5})
	hookID := hook.Entity()

	for i := 0; i < 4; i++ {
		f.world.Tick()
	}
	if f.grapples.Active(s.PlayerID) == nil {
		t.Fatalf("session ended early")
	}
	f.world.Tick()
	if s.State() != GrappleTimedOut {
		t.Fatalf("state = %s, want timed out", s.State())
	}
	if f.world.Exists(hookID) || f.world.Exists(s.Anchor()) {
		t.Fatalf("timeout left entities behind")
	}
	if !f.crossbow.Charged {
		t.Fatalf("crossbow not reloaded after timeout")
	}
}

func TestGrappleAbortsWhenHookVanishes(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(nil)
	f.world.Remove(hook)
	f.world.Tick()
	if s.State() != GrappleAborted || f.grapples.Len() != 0 {
		t.Fatalf("state = %s, want aborted", s.State())
	}
	if f.world.Exists(s.Anchor()) {
		t.Fatalf("anchor survived")
	}
}

func TestGrappleVanishedHookSlotIsNotClaimed(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(nil)
	f.world.Remove(hook)

	// The next projectile takes the removed hook's slot in the entity store.
	ball := f.world.SpawnProjectile(components.Snowball, f.player, mgl64.Vec3{8, 3, 4}, mgl64.Vec3{0, 0, 1}, nil)
	if ball.Entity().Id() != s.Hook().Id() {
		t.Fatalf("expected the snowball to reuse the hook's id")
	}
	if ball.Entity() == s.Hook() {
		t.Fatalf("snowball shares the hook's version")
	}

	ev := &sim.HitEvent{Projectile: ball, HitBlock: &sim.BlockPos{X: 8, Y: 3, Z: 6}, Location: mgl64.Vec3{8, 3, 6}}
	if f.grapples.OnHookHit(ev) {
		t.Fatalf("snowball resolved the grapple")
	}
	if vel, _ := f.world.Velocity(f.player); vel != (mgl64.Vec3{}) {
		t.Fatalf("player pulled by a snowball: %v", vel)
	}

	f.world.Tick()
	if s.State() != GrappleAborted || f.grapples.Len() != 0 {
		t.Fatalf("state = %s, want aborted", s.State())
	}
	if !f.world.Valid(ball) {
		t.Fatalf("teardown removed the snowball")
	}
}

func TestGrappleAbortsOnDeath(t *testing.T) {
	f := newGrappleFixture(t)
	s, _ := f.fire(nil)
	f.world.Damage(f.player, 1000, nil)
	f.world.Tick()
	if s.State() != GrappleAborted {
		t.Fatalf("state = %s, want aborted", s.State())
	}
}

func TestGrappleCleanupWithPlayerGone(t *testing.T) {
	f := newGrappleFixture(t)
	s, hook := f.fire(nil)
	hookID := hook.Entity()
	f.world.Remove(f.player)

	f.grapples.Abort(s.PlayerID)
	f.grapples.Abort(s.PlayerID)
	if f.world.Exists(hookID) || f.grapples.Len() != 0 {
		t.Fatalf("abort incomplete")
	}
}

func TestGrappleIgnoresForeignProjectiles(t *testing.T) {
	f := newGrappleFixture(t)
	f.fire(nil)
	other := f.world.SpawnProjectile(components.Arrow, nil, mgl64.Vec3{3, 5, 3}, mgl64.Vec3{0, 0, 1}, nil)
	ev := &sim.HitEvent{Projectile: other, HitEntity: f.player}
	if f.grapples.OnHookHit(ev) || ev.Cancelled() {
		t.Fatalf("foreign arrow treated as a hook")
	}
	if f.grapples.Len() != 1 {
		t.Fatalf("session disturbed")
	}
}
