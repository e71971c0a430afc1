package sim

import (
	"math"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func (w *World) updateLiving(e *ecs.ECS) {
	var dead []donburi.Entity
	components.Living.Each(e.World, func(entry *donburi.Entry) {
		living := components.Living.Get(entry)
		if living.Dead {
			if !entry.HasComponent(tags.Player) {
				dead = append(dead, entry.Entity())
			}
			return
		}

		w.moveLiving(entry)
		w.tickFire(entry, living)
		w.tickEffects(entry, living)

		if components.Transform.Get(entry).Pos.Y() < cfg.Sim.VoidY {
			w.Damage(entry, living.Health, nil)
		}
	})
	for _, id := range dead {
		w.Remove(w.Entry(id))
	}
}

// moveLiving integrates velocity against the block map one axis at a time.
func (w *World) moveLiving(e *donburi.Entry) {
	t := components.Transform.Get(e)
	vel := components.Velocity.Get(e)
	body := components.Body.Get(e)

	pos := t.Pos
	for axis := 0; axis < 3; axis++ {
		if vel.V[axis] == 0 {
			continue
		}
		next := pos
		next[axis] += vel.V[axis]
		if w.boxCollides(next, body.Width, body.Height) {
			if axis == 1 && vel.V[1] < 0 {
				next[1] = math.Floor(pos.Y()+vel.V[1]) + 1
				if w.boxCollides(next, body.Width, body.Height) {
					next[1] = pos.Y()
				}
				pos = next
			}
			vel.V[axis] = 0
			continue
		}
		pos = next
	}

	body.OnGround = w.boxCollides(pos.Add(mgl64.Vec3{0, -0.01, 0}), body.Width, body.Height)
	t.Pos = pos
	syncBody(e)

	vel.V[1] = (vel.V[1] - cfg.Sim.LivingGravity) * cfg.Sim.LivingDrag
	horizontal := cfg.Sim.LivingDrag
	if body.OnGround {
		horizontal *= cfg.Sim.GroundFriction
		if vel.V[1] < 0 {
			vel.V[1] = 0
		}
	}
	vel.V[0] *= horizontal
	vel.V[2] *= horizontal
}

// boxCollides reports whether an entity box with feet at pos overlaps any
// solid block.
func (w *World) boxCollides(pos mgl64.Vec3, width, height float64) bool {
	half := width / 2
	const eps = 1e-6
	x0, x1 := int(math.Floor(pos.X()-half+eps)), int(math.Floor(pos.X()+half-eps))
	y0, y1 := int(math.Floor(pos.Y()+eps)), int(math.Floor(pos.Y()+height-eps))
	z0, z1 := int(math.Floor(pos.Z()-half+eps)), int(math.Floor(pos.Z()+half-eps))
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				if w.IsSolid(BlockPos{x, y, z}) {
					return true
				}
			}
		}
	}
	return false
}

func (w *World) tickFire(e *donburi.Entry, living *components.LivingData) {
	if w.Block(BlockAt(components.Transform.Get(e).Pos)) == "fire" {
		living.FireTicks = max(living.FireTicks, cfg.Sim.FireDamageTicks*4)
	}
	if living.FireTicks <= 0 {
		return
	}
	living.FireTicks--
	if living.FireTicks%cfg.Sim.FireDamageTicks == 0 {
		w.Damage(e, cfg.Sim.FireDamage, nil)
	}
}

func (w *World) tickEffects(e *donburi.Entry, living *components.LivingData) {
	for name, effect := range living.Effects {
		interval := max(cfg.Sim.PoisonInterval>>max(effect.Amplifier, 0), 1)
		switch name {
		case "poison":
			if effect.Ticks%interval == 0 && living.Health > 1 {
				w.Damage(e, 1, nil)
			}
		case "wither":
			if effect.Ticks%interval == 0 {
				w.Damage(e, 1, nil)
			}
		case "regeneration":
			if effect.Ticks%(interval*2) == 0 {
				living.Health = math.Min(living.Health+1, living.MaxHealth)
			}
		case "levitation":
			components.Velocity.Get(e).V[1] = 0.05 * float64(effect.Amplifier+1)
		case "instant_damage":
			w.Damage(e, math.Ldexp(6, effect.Amplifier), nil)
			effect.Ticks = 1
		case "instant_health":
			living.Health = math.Min(living.Health+math.Ldexp(4, effect.Amplifier), living.MaxHealth)
			effect.Ticks = 1
		}
		if living.Dead {
			return
		}
		effect.Ticks--
		if effect.Ticks <= 0 {
			delete(living.Effects, name)
		} else {
			living.Effects[name] = effect
		}
	}
}

func (w *World) updateItemDrops(e *ecs.ECS) {
	tags.ItemDrop.Each(e.World, func(entry *donburi.Entry) {
		t := components.Transform.Get(entry)
		vel := components.Velocity.Get(entry)
		next := t.Pos.Add(vel.V)
		if w.IsSolid(BlockAt(next)) {
			next = t.Pos
			next[1] = math.Floor(t.Pos.Y())
			if w.IsSolid(BlockAt(next)) {
				next[1]++
			}
			vel.V = mgl64.Vec3{}
		} else {
			vel.V = vel.V.Mul(cfg.Sim.LivingDrag)
			vel.V[1] -= 0.04
		}
		t.Pos = next
	})
}

// updateLeashes breaks leads whose holder is gone.
func (w *World) updateLeashes(e *ecs.ECS) {
	var broken []donburi.Entity
	components.Leash.Each(e.World, func(entry *donburi.Entry) {
		leash := components.Leash.Get(entry)
		if leash.Holder != donburi.Null && !w.IsAlive(w.Entry(leash.Holder)) {
			broken = append(broken, entry.Entity())
		}
	})
	for _, id := range broken {
		w.Unleash(w.Entry(id), true)
	}
}

// updatePassengers moves riders onto their vehicles. Riders of a removed
// vehicle are dismounted where they are.
func (w *World) updatePassengers(e *ecs.ECS) {
	components.Mount.Each(e.World, func(entry *donburi.Entry) {
		mount := components.Mount.Get(entry)
		if mount.Vehicle == donburi.Null {
			return
		}
		pos, ok := w.Location(w.Entry(mount.Vehicle))
		if !ok {
			mount.Vehicle = donburi.Null
			return
		}
		components.Transform.Get(entry).Pos = pos
	})
}

func (w *World) updateAutoDestroy(e *ecs.ECS) {
	var expired []donburi.Entity
	components.AutoDestroy.Each(e.World, func(entry *donburi.Entry) {
		ad := components.AutoDestroy.Get(entry)
		ad.TicksRemaining--
		if ad.TicksRemaining <= 0 {
			expired = append(expired, entry.Entity())
		}
	})
	for _, id := range expired {
		w.Remove(w.Entry(id))
	}
}
