package sim

import (
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HitEvent is one projectile impact. Exactly one of HitEntity and HitBlock is
// set.
type HitEvent struct {
	Projectile *donburi.Entry
	HitEntity  *donburi.Entry
	HitBlock   *BlockPos
	Face       gamemath.BlockFace
	Location   mgl64.Vec3 // Projectile position at impact
	Velocity   mgl64.Vec3 // Projectile velocity at impact

	cancelled bool
}

// Cancel suppresses the host's handling: the projectile is not removed and
// an entity hit is passed through.
func (e *HitEvent) Cancel() { e.cancelled = true }

func (e *HitEvent) Cancelled() bool { return e.cancelled }

// World events are delivered at the end of the tick, so they carry entity
// ids. Resolve them with World.Entry; anything may have been removed since.

// Damaged is published after a living entity loses health.
type Damaged struct {
	Entity donburi.Entity
	Amount float64
	Source donburi.Entity
}

// Died is published once when a living entity's health reaches zero.
type Died struct {
	Entity donburi.Entity
	Killer donburi.Entity
	Kind   string
}

// Exploded is published for every explosion.
type Exploded struct {
	Center mgl64.Vec3
	Power  float64
	Source donburi.Entity
}

// World events, delivered at the end of each tick.
var (
	EntityDamaged = events.NewEventType[Damaged]()
	EntityDied    = events.NewEventType[Died]()
	Explosion     = events.NewEventType[Exploded]()
)

func processEvents(w donburi.World) {
	EntityDamaged.ProcessEvents(w)
	EntityDied.ProcessEvents(w)
	Explosion.ProcessEvents(w)
}
