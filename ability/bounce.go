package ability

import (
	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// bounce reflects a block hit off the struck face and respawns the projectile
// one tick later with one bounce fewer. Entity hits never bounce; with ignite
// they set the target on fire.
func bounce(h Host, hit Hit, ignite bool) bool {
	w := h.World()
	ev := hit.Event

	if ev.HitEntity != nil {
		if ignite {
			w.SetFireTicks(ev.HitEntity, hit.Def.Options.Int("fire-ticks", cfg.Ability.IgniteFireTicks))
		}
		return true
	}
	if ev.HitBlock == nil || hit.Bounces <= 0 {
		return true
	}

	v := gamemath.Reflect(direction(w, ev), ev.Face).Mul(cfg.Bounce.Damping)
	remaining := hit.Bounces - 1
	shooter := w.Shooter(ev.Projectile)
	if shooter == nil {
		return true
	}
	shooterID := shooter.Entity()
	at := ev.Location
	def := hit.Def

	// The original is gone once this hit resolves; its replacement is spawned
	// after the collision has settled.
	w.Scheduler().RunLater(1, func() {
		shooter := w.Entry(shooterID)
		if shooter == nil || !shooter.HasComponent(components.Player) {
			return
		}
		spawn := at.Add(gamemath.NormalizeOr(v, mgl64.Vec3{}).Mul(cfg.Bounce.RespawnNudge))
		h.SpawnBouncedProjectile(shooter, spawn, v, def, remaining)
	})
	return true
}
