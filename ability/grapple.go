package ability

import (
	"log"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/scheduler"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

// GrappleState is where a session is in its lifecycle.
type GrappleState int

const (
	GrappleLaunched GrappleState = iota
	GrappleTracking
	GrappleResolved
	GrappleTimedOut
	GrappleAborted
)

func (s GrappleState) String() string {
	switch s {
	case GrappleLaunched:
		return "launched"
	case GrappleTracking:
		return "tracking"
	case GrappleResolved:
		return "resolved"
	case GrappleTimedOut:
		return "timed out"
	case GrappleAborted:
		return "aborted"
	}
	return "unknown"
}

// OffHandSlot marks a session launched from the off hand.
const OffHandSlot = -1

// GrappleSession is one player's hook in flight, the lead anchor that follows
// it and the task that moves the anchor. Entities are held by id; any of them
// may be removed by the world between ticks.
type GrappleSession struct {
	PlayerID uuid.UUID

	player donburi.Entity
	hook   donburi.Entity
	anchor donburi.Entity
	task   *scheduler.Task

	slot      int
	unloaded  bool // The crossbow in slot was charged and has been emptied
	strength  float64
	timeout   int
	age       int
	state     GrappleState
	finalized bool
}

func (s *GrappleSession) State() GrappleState    { return s.state }
func (s *GrappleSession) Hook() donburi.Entity   { return s.hook }
func (s *GrappleSession) Anchor() donburi.Entity { return s.anchor }

// Grapples owns the live grapple sessions, at most one per player.
type Grapples struct {
	world    *sim.World
	sessions map[uuid.UUID]*GrappleSession
}

func NewGrapples(w *sim.World) *Grapples {
	return &Grapples{
		world:    w,
		sessions: map[uuid.UUID]*GrappleSession{},
	}
}

// Active returns the player's live session, or nil.
func (g *Grapples) Active(id uuid.UUID) *GrappleSession {
	return g.sessions[id]
}

func (g *Grapples) Len() int { return len(g.sessions) }

// Launch starts tracking hook for player. Any session the player already has
// is torn down first. slot is the hotbar slot of the launching item, or
// OffHandSlot.
func (g *Grapples) Launch(player, hook *donburi.Entry, slot int, opts definitions.Options) *GrappleSession {
	w := g.world
	if !w.IsAlive(player) || !player.HasComponent(components.Player) || !w.Valid(hook) {
		return nil
	}
	pd := components.Player.Get(player)
	if old := g.sessions[pd.ID]; old != nil {
		g.finish(old, GrappleAborted)
		w.Remove(w.Entry(old.hook))
	}

	s := &GrappleSession{
		PlayerID: pd.ID,
		player:   player.Entity(),
		hook:     hook.Entity(),
		slot:     slot,
		strength: opts.Float("pull-strength", cfg.Grapple.DefaultPullStrength),
		timeout:  opts.Int("timeout-ticks", cfg.Grapple.DefaultTimeoutTicks),
		state:    GrappleLaunched,
	}

	hookPos, _ := w.Location(hook)
	s.anchor = w.SpawnLeashAnchor(anchorPos(hookPos), player).Entity()

	if stack := heldStack(pd, slot); stack != nil && stack.Material == "crossbow" && stack.Charged {
		stack.Charged = false
		s.unloaded = true
	}

	s.task = w.Scheduler().RunTimer(1, 1, func(*scheduler.Task) { g.track(s) })
	g.sessions[pd.ID] = s
	return s
}

func (g *Grapples) track(s *GrappleSession) {
	w := g.world
	hook, anchor := w.Entry(s.hook), w.Entry(s.anchor)
	if hook == nil || anchor == nil || !w.IsAlive(w.Entry(s.player)) {
		g.finish(s, GrappleAborted)
		return
	}
	s.state = GrappleTracking

	s.age++
	if s.age >= s.timeout {
		g.finish(s, GrappleTimedOut)
		w.Remove(w.Entry(s.hook))
		return
	}

	hookPos, _ := w.Location(hook)
	w.Teleport(anchor, anchorPos(hookPos))
}

// OnHookHit resolves a session whose hook landed. It reports whether the
// projectile was a live hook; anything else is left to the caller.
func (g *Grapples) OnHookHit(ev *sim.HitEvent) bool {
	w := g.world
	if !w.Valid(ev.Projectile) {
		return false
	}
	s := g.byHook(ev.Projectile.Entity())
	if s == nil {
		return false
	}

	// The player is not an anchor point; the hook flies on.
	if w.Valid(ev.HitEntity) && ev.HitEntity.Entity() == s.player {
		ev.Cancel()
		return true
	}

	player := w.Entry(s.player)
	if from, ok := w.Location(player); ok && w.IsAlive(player) {
		pull := gamemath.PullVelocity(from, ev.Location, s.strength, cfg.Grapple.MaxPullSpeed, cfg.Grapple.MinVerticalPull)
		w.SetVelocity(player, pull)
	}
	g.finish(s, GrappleResolved)
	w.Remove(w.Entry(s.hook))
	return true
}

// Abort ends the player's session and removes its hook, for a player who is
// leaving.
func (g *Grapples) Abort(id uuid.UUID) {
	if s := g.sessions[id]; s != nil {
		g.finish(s, GrappleAborted)
		g.world.Remove(g.world.Entry(s.hook))
	}
}

// CloseAll aborts every session.
func (g *Grapples) CloseAll() {
	for id := range g.sessions {
		g.Abort(id)
	}
}

func (g *Grapples) byHook(hook donburi.Entity) *GrappleSession {
	for _, s := range g.sessions {
		if s.hook == hook {
			return s
		}
	}
	return nil
}

// finish runs cleanup once per session, whichever terminal path gets there
// first. Entities that are already gone are skipped.
func (g *Grapples) finish(s *GrappleSession, state GrappleState) {
	if s.finalized {
		return
	}
	s.finalized = true
	s.state = state
	w := g.world

	s.task.Cancel()
	s.task = nil

	// Unleash without a drop so no lead falls out of the sky.
	anchor := w.Entry(s.anchor)
	w.Unleash(anchor, false)
	w.Remove(anchor)

	if player := w.Entry(s.player); s.unloaded && player != nil && player.HasComponent(components.Player) {
		if stack := heldStack(components.Player.Get(player), s.slot); stack != nil && stack.Material == "crossbow" {
			stack.Charged = true
		}
	}

	if g.sessions[s.PlayerID] == s {
		delete(g.sessions, s.PlayerID)
	}
	if state != GrappleResolved {
		log.Printf("[grapple] Session for %s %s after %d ticks", s.PlayerID, state, s.age)
	}
}

func anchorPos(hook mgl64.Vec3) mgl64.Vec3 {
	return hook.Add(mgl64.Vec3{0, cfg.Grapple.AnchorOffsetY, 0})
}

func heldStack(p *components.PlayerData, slot int) *components.ItemStack {
	if slot == OffHandSlot {
		return p.OffHand
	}
	if slot < 0 || slot >= components.HotbarSize {
		return nil
	}
	return p.Hotbar[slot]
}
