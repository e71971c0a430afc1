package ability

import (
	"strings"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

func explode(h Host, hit Hit) bool {
	opts := hit.Def.Options
	w := h.World()
	w.CreateExplosion(
		hit.Event.Location,
		opts.Float("power", cfg.Ability.ExplodePower),
		opts.Bool("fire", false),
		opts.Bool("break-blocks", false),
		w.Shooter(hit.Event.Projectile),
	)
	return true
}

// fireball continues the throw as an incendiary small fireball. Option speed
// of 0 keeps the projectile's own speed.
func fireball(h Host, hit Hit) bool {
	w := h.World()
	ev := hit.Event

	speed := hit.Def.Options.Float("speed", cfg.Ability.FireballSpeed)
	if speed <= 0 {
		speed = ev.Velocity.Len()
	}
	if speed <= 0 {
		speed = cfg.Projectile.DefaultSpeed
	}
	dir := gamemath.NormalizeOr(direction(w, ev), mgl64.Vec3{0, 0, 1})
	w.SpawnProjectile(components.SmallFireball, w.Shooter(ev.Projectile), ev.Location, dir.Mul(speed), nil)
	return true
}

func potion(h Host, hit Hit) bool {
	if hit.Event.HitEntity == nil {
		return true
	}
	opts := hit.Def.Options
	effect := strings.TrimPrefix(strings.ToLower(opts.String("effect", "poison")), "minecraft:")
	h.World().AddPotionEffect(
		hit.Event.HitEntity,
		effect,
		opts.Int("duration", cfg.Ability.PotionDurationTicks),
		opts.Int("amplifier", cfg.Ability.PotionAmplifier),
	)
	return true
}

// swap trades places between the thrower and the entity it hit. Each keeps
// its own look direction. The host's handling of the hit is cancelled and the
// projectile removed here, so no standard effects follow.
func swap(h Host, hit Hit) bool {
	w := h.World()
	ev := hit.Event
	target := ev.HitEntity
	if target == nil {
		return true
	}
	shooter := w.Shooter(ev.Projectile)
	if !w.IsAlive(shooter) || !w.IsAlive(target) {
		return true
	}
	if h.Settings().IsSwapExempt(w.EntityType(target), w.Tags(target)) {
		return true
	}

	from, _ := w.Location(shooter)
	to, _ := w.Location(target)
	w.Teleport(shooter, to)
	w.Teleport(target, from)

	sound, volume, pitch := cfg.SoundTeleport, cfg.Audio.DefaultVolume, cfg.Audio.DefaultPitch
	if s := hit.Def.Sounds; s != nil && s.Impact != "" {
		sound, volume, pitch = s.Impact, s.Volume, s.Pitch
	}
	h.Feedback().PlaySound(to, sound, volume, pitch)
	h.Feedback().PlaySound(from, sound, volume, pitch)

	ev.Cancel()
	w.Remove(ev.Projectile)
	return false
}
