package ability

import (
	"math"
	"testing"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/feedback"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

type respawn struct {
	shooter   *donburi.Entry
	at, vel   mgl64.Vec3
	remaining int
}

type testHost struct {
	world    *sim.World
	settings cfg.Settings
	sounds   []string
	respawns []respawn
}

func newTestHost() *testHost {
	return &testHost{world: sim.NewFlat(16, 16), settings: cfg.DefaultSettings()}
}

func (h *testHost) World() *sim.World       { return h.world }
func (h *testHost) Settings() cfg.Settings  { return h.settings }
func (h *testHost) Feedback() feedback.Sink { return soundRecorder{h} }

func (h *testHost) SpawnBouncedProjectile(shooter *donburi.Entry, at, vel mgl64.Vec3, def *definitions.Definition, remaining int) *donburi.Entry {
	h.respawns = append(h.respawns, respawn{shooter, at, vel, remaining})
	return h.world.SpawnProjectile(components.Snowball, shooter, at, vel, nil)
}

type soundRecorder struct{ h *testHost }

func (r soundRecorder) PlaySound(_ mgl64.Vec3, sound string, _, _ float64) {
	r.h.sounds = append(r.h.sounds, sound)
}

func (soundRecorder) SpawnParticles(mgl64.Vec3, string, int, float64, float64) {}

func (h *testHost) player() *donburi.Entry {
	return h.world.SpawnPlayer(uuid.New(), "tester", mgl64.Vec3{8, 1, 2})
}

func blockHit(h *testHost, shooter *donburi.Entry, vel mgl64.Vec3, face gamemath.BlockFace) *sim.HitEvent {
	proj := h.world.SpawnProjectile(components.Snowball, shooter, mgl64.Vec3{8, 2, 8}, vel, nil)
	return &sim.HitEvent{
		Projectile: proj,
		HitBlock:   &sim.BlockPos{X: 8, Y: 2, Z: 9},
		Face:       face,
		Location:   mgl64.Vec3{8, 2, 8},
		Velocity:   vel,
	}
}

func entityHit(h *testHost, shooter, target *donburi.Entry) *sim.HitEvent {
	pos, _ := h.world.Location(target)
	proj := h.world.SpawnProjectile(components.Snowball, shooter, pos, mgl64.Vec3{0, 0, 1}, nil)
	return &sim.HitEvent{
		Projectile: proj,
		HitEntity:  target,
		Location:   pos,
		Velocity:   mgl64.Vec3{0, 0, 1},
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"bounce", KindBounce},
		{"IGNITE", KindIgnite},
		{" explode ", KindExplode},
		{"fireball", KindFireball},
		{"potion", KindPotion},
		{"swap", KindSwap},
		{"grapple", KindGrapple},
		{"", KindNone},
		{"teleport", KindNone},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.name); got != tt.want {
			t.Fatalf("ParseKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !KindIgnite.UsesBounces() || KindExplode.UsesBounces() {
		t.Fatalf("UsesBounces wrong")
	}
}

func TestUnknownKindDestroys(t *testing.T) {
	h := newTestHost()
	ev := blockHit(h, nil, mgl64.Vec3{0, 0, 1}, gamemath.North)
	if !Dispatch(KindNone, h, Hit{Event: ev, Def: &definitions.Definition{}}) {
		t.Fatalf("no-op ability kept the projectile")
	}
}

func TestBounceReflection(t *testing.T) {
	tests := []struct {
		face gamemath.BlockFace
		want mgl64.Vec3
	}{
		{gamemath.North, mgl64.Vec3{0.8, 1.6, -2.4}},
		{gamemath.South, mgl64.Vec3{0.8, 1.6, -2.4}},
		{gamemath.East, mgl64.Vec3{-0.8, 1.6, 2.4}},
		{gamemath.West, mgl64.Vec3{-0.8, 1.6, 2.4}},
		{gamemath.Up, mgl64.Vec3{0.8, -1.6, 2.4}},
		{gamemath.Down, mgl64.Vec3{0.8, -1.6, 2.4}},
		{gamemath.FaceSelf, mgl64.Vec3{-0.8, -1.6, -2.4}},
	}
	for _, tt := range tests {
		t.Run(tt.face.String(), func(t *testing.T) {
			h := newTestHost()
			shooter := h.player()
			ev := blockHit(h, shooter, mgl64.Vec3{1, 2, 3}, tt.face)
			def := &definitions.Definition{ID: "ball", Ability: "bounce"}

			if !Dispatch(KindBounce, h, Hit{Event: ev, Def: def, Bounces: 2}) {
				t.Fatalf("bounce kept the original")
			}
			if len(h.respawns) != 0 {
				t.Fatalf("respawned within the hit")
			}
			h.world.Tick()
			if len(h.respawns) != 1 {
				t.Fatalf("respawns = %d, want 1", len(h.respawns))
			}
			got := h.respawns[0]
			if !got.vel.ApproxEqualThreshold(tt.want, 1e-9) {
				t.Fatalf("velocity = %v, want %v", got.vel, tt.want)
			}
			if got.remaining != 1 {
				t.Fatalf("remaining = %d, want 1", got.remaining)
			}
			nudge := got.at.Sub(ev.Location)
			if math.Abs(nudge.Len()-cfg.Bounce.RespawnNudge) > 1e-9 || nudge.Dot(tt.want) <= 0 {
				t.Fatalf("spawn offset = %v", nudge)
			}
		})
	}
}

func TestBounceBudgetExhausted(t *testing.T) {
	h := newTestHost()
	ev := blockHit(h, h.player(), mgl64.Vec3{0, 0, 1}, gamemath.North)
	Dispatch(KindBounce, h, Hit{Event: ev, Def: &definitions.Definition{}, Bounces: 0})
	h.world.Tick()
	if len(h.respawns) != 0 {
		t.Fatalf("bounced with no budget left")
	}
}

func TestBounceNeedsPlayerShooter(t *testing.T) {
	h := newTestHost()
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{3, 1, 3})
	ev := blockHit(h, zombie, mgl64.Vec3{0, 0, 1}, gamemath.North)
	Dispatch(KindBounce, h, Hit{Event: ev, Def: &definitions.Definition{}, Bounces: 3})
	h.world.Tick()
	if len(h.respawns) != 0 {
		t.Fatalf("mob-thrown projectile bounced")
	}
}

func TestBounceDroppedWhenShooterLeaves(t *testing.T) {
	h := newTestHost()
	shooter := h.player()
	ev := blockHit(h, shooter, mgl64.Vec3{0, 0, 1}, gamemath.North)
	Dispatch(KindBounce, h, Hit{Event: ev, Def: &definitions.Definition{}, Bounces: 3})

	// Another player joins into the slot the thrower left.
	h.world.Remove(shooter)
	h.player()
	h.world.Tick()
	if len(h.respawns) != 0 {
		t.Fatalf("bounce continued for a player who left")
	}
}

func TestBounceZeroVelocityUsesFacing(t *testing.T) {
	h := newTestHost()
	ev := blockHit(h, h.player(), mgl64.Vec3{0, 0, 1}, gamemath.North)
	ev.Velocity = mgl64.Vec3{}
	Dispatch(KindBounce, h, Hit{Event: ev, Def: &definitions.Definition{}, Bounces: 1})
	h.world.Tick()
	if len(h.respawns) != 1 {
		t.Fatalf("respawns = %d", len(h.respawns))
	}
	if want := (mgl64.Vec3{0, 0, -0.8}); !h.respawns[0].vel.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("velocity = %v, want %v", h.respawns[0].vel, want)
	}
}

func TestIgniteEntityHit(t *testing.T) {
	h := newTestHost()
	shooter := h.player()
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 8})
	def := &definitions.Definition{Options: definitions.Options{"fire-ticks": 60}}

	if !Dispatch(KindIgnite, h, Hit{Event: entityHit(h, shooter, zombie), Def: def, Bounces: 1}) {
		t.Fatalf("ignite kept the projectile")
	}
	if got := components.Living.Get(zombie).FireTicks; got != 60 {
		t.Fatalf("fire ticks = %d, want 60", got)
	}
	h.world.Tick()
	if len(h.respawns) != 0 {
		t.Fatalf("entity hit bounced")
	}
}

func TestPotion(t *testing.T) {
	h := newTestHost()
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 8})
	def := &definitions.Definition{Options: definitions.Options{"effect": "minecraft:POISON", "duration": 40, "amplifier": 1}}

	Dispatch(KindPotion, h, Hit{Event: entityHit(h, nil, zombie), Def: def})
	eff, ok := components.Living.Get(zombie).Effects["poison"]
	if !ok || eff.Ticks != 40 || eff.Amplifier != 1 {
		t.Fatalf("effect = %+v, %v", eff, ok)
	}

	if !Dispatch(KindPotion, h, Hit{Event: blockHit(h, nil, mgl64.Vec3{0, 0, 1}, gamemath.North), Def: def}) {
		t.Fatalf("block hit kept the projectile")
	}
}

func TestPotionNegativeAmplifier(t *testing.T) {
	h := newTestHost()
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 8})
	def := &definitions.Definition{Options: definitions.Options{"effect": "wither", "duration": 60, "amplifier": -1}}

	Dispatch(KindPotion, h, Hit{Event: entityHit(h, nil, zombie), Def: def})
	if eff := components.Living.Get(zombie).Effects["wither"]; eff.Amplifier != 0 {
		t.Fatalf("amplifier = %d, want 0", eff.Amplifier)
	}
	for i := 0; i < 60; i++ {
		h.world.Tick()
	}
	if components.Living.Get(zombie).Health >= cfg.Sim.MobHealth {
		t.Fatalf("wither did no damage")
	}
}

func TestExplode(t *testing.T) {
	h := newTestHost()
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 8})
	def := &definitions.Definition{Options: definitions.Options{"power": 2.0}}

	ev := blockHit(h, nil, mgl64.Vec3{0, 0, 1}, gamemath.North)
	ev.Location = mgl64.Vec3{8, 1.5, 8.5}
	if !Dispatch(KindExplode, h, Hit{Event: ev, Def: def}) {
		t.Fatalf("explode kept the projectile")
	}
	if components.Living.Get(zombie).Health >= cfg.Sim.MobHealth {
		t.Fatalf("explosion did no damage")
	}
}

func TestFireball(t *testing.T) {
	h := newTestHost()
	shooter := h.player()
	def := &definitions.Definition{Options: definitions.Options{"speed": 0.5}}
	ev := blockHit(h, shooter, mgl64.Vec3{0, 0, 2}, gamemath.North)

	Dispatch(KindFireball, h, Hit{Event: ev, Def: def})

	var fireballs []*donburi.Entry
	components.Projectile.Each(h.world.Donburi(), func(e *donburi.Entry) {
		if components.Projectile.Get(e).Kind == components.SmallFireball {
			fireballs = append(fireballs, e)
		}
	})
	if len(fireballs) != 1 {
		t.Fatalf("fireballs = %d, want 1", len(fireballs))
	}
	vel, _ := h.world.Velocity(fireballs[0])
	if !vel.ApproxEqualThreshold(mgl64.Vec3{0, 0, 0.5}, 1e-9) {
		t.Fatalf("fireball velocity = %v", vel)
	}
	if h.world.Shooter(fireballs[0]) != shooter {
		t.Fatalf("fireball lost its shooter")
	}
}

func TestSwap(t *testing.T) {
	h := newTestHost()
	shooter := h.player()
	h.world.SetLook(shooter, 45, 10)
	zombie := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 10})
	h.world.SetLook(zombie, -90, 0)
	def := &definitions.Definition{Sounds: &definitions.SoundSpec{Impact: "swoosh", Volume: 1, Pitch: 1}}

	ev := entityHit(h, shooter, zombie)
	projID := ev.Projectile.Entity()
	if Dispatch(KindSwap, h, Hit{Event: ev, Def: def}) {
		t.Fatalf("swap asked for the standard effects")
	}
	if !ev.Cancelled() {
		t.Fatalf("swap did not cancel the event")
	}
	if h.world.Exists(projID) {
		t.Fatalf("swap left the projectile")
	}

	sp, _ := h.world.Location(shooter)
	zp, _ := h.world.Location(zombie)
	if sp != (mgl64.Vec3{8, 1, 10}) || zp != (mgl64.Vec3{8, 1, 2}) {
		t.Fatalf("positions after swap: shooter %v zombie %v", sp, zp)
	}
	if tr := components.Transform.Get(shooter); tr.Yaw != 45 || tr.Pitch != 10 {
		t.Fatalf("shooter look changed: %v %v", tr.Yaw, tr.Pitch)
	}
	if tr := components.Transform.Get(zombie); tr.Yaw != -90 {
		t.Fatalf("target look changed: %v", tr.Yaw)
	}
	if len(h.sounds) != 2 || h.sounds[0] != "swoosh" {
		t.Fatalf("sounds = %v", h.sounds)
	}
}

func TestSwapExempt(t *testing.T) {
	h := newTestHost()
	h.settings.SwapExemptions = []cfg.EntityExemption{{RequiredTags: []string{"boss"}}}
	shooter := h.player()
	boss := h.world.SpawnMob("zombie", mgl64.Vec3{8, 1, 10}, "boss")

	ev := entityHit(h, shooter, boss)
	if !Dispatch(KindSwap, h, Hit{Event: ev, Def: &definitions.Definition{}}) {
		t.Fatalf("exempt target should fall through to the standard effects")
	}
	if pos, _ := h.world.Location(boss); pos != (mgl64.Vec3{8, 1, 10}) {
		t.Fatalf("exempt target moved to %v", pos)
	}
	if ev.Cancelled() || len(h.sounds) != 0 {
		t.Fatalf("exempt swap had side effects")
	}
}

func TestSwapBlockHit(t *testing.T) {
	h := newTestHost()
	ev := blockHit(h, h.player(), mgl64.Vec3{0, 0, 1}, gamemath.North)
	if !Dispatch(KindSwap, h, Hit{Event: ev, Def: &definitions.Definition{}}) || ev.Cancelled() {
		t.Fatalf("block hit should just destroy")
	}
}
