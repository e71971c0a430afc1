package sim

import (
	"sort"

	"github.com/automoto/yeetables/archetypes"
	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// impactBackoff keeps block impact points just outside the struck block.
const impactBackoff = 1e-3

// SpawnProjectile launches a projectile of the given kind from pos. item is
// what the carrier visibly shows; nil shows nothing.
func (w *World) SpawnProjectile(kind components.ProjectileKind, shooter *donburi.Entry, pos, vel mgl64.Vec3, item *components.ItemStack) *donburi.Entry {
	var e *donburi.Entry
	data := components.ProjectileData{
		Kind:    kind,
		Shooter: entityOf(shooter),
		Item:    item.Clone(),
		Drag:    cfg.Projectile.Drag,
	}
	switch kind {
	case components.Arrow:
		e = archetypes.Arrow.Spawn(w.ecs.World)
		data.Gravity = cfg.Projectile.ArrowGravity
	case components.SmallFireball:
		e = archetypes.SmallFireball.Spawn(w.ecs.World)
		data.Gravity = cfg.Projectile.FireballGravity
		data.Drag = 1
		data.Incendiary = true
	default:
		e = archetypes.Snowball.Spawn(w.ecs.World)
		data.Gravity = cfg.Projectile.SnowballGravity
	}
	components.Projectile.Set(e, &data)

	t := &components.TransformData{Pos: pos}
	t.LookAlong(vel)
	components.Transform.Set(e, t)
	components.Velocity.Set(e, &components.VelocityData{V: vel})

	size := cfg.Projectile.HitboxSize
	obj := resolv.NewObject(0, 0, 0, 0, tags.ResolvProjectile)
	setFootprint(obj, pos.X()-size/2, pos.Z()-size/2, pos.X()+size/2, pos.Z()+size/2)
	obj.Data = e.Entity()
	w.space.Add(obj)
	components.Body.Set(e, &components.BodyData{Width: size, Height: size, Object: obj})
	return e
}

// SetProjectileItem replaces what the carrier visibly shows.
func (w *World) SetProjectileItem(e *donburi.Entry, item *components.ItemStack) {
	if w.Valid(e) && e.HasComponent(components.Projectile) {
		components.Projectile.Get(e).Item = item.Clone()
	}
}

// Shooter returns who launched the projectile, or nil.
func (w *World) Shooter(projectile *donburi.Entry) *donburi.Entry {
	if !w.Valid(projectile) || !projectile.HasComponent(components.Projectile) {
		return nil
	}
	return w.Entry(components.Projectile.Get(projectile).Shooter)
}

func (w *World) updateProjectiles(e *ecs.ECS) {
	var live []donburi.Entity
	components.Projectile.Each(e.World, func(entry *donburi.Entry) {
		live = append(live, entry.Entity())
	})
	// Handlers may spawn or remove projectiles; step a snapshot.
	for _, id := range live {
		if entry := w.Entry(id); entry != nil {
			w.stepProjectile(entry)
		}
	}
}

type entityHit struct {
	id donburi.Entity
	t  float64
}

func (w *World) stepProjectile(e *donburi.Entry) {
	id := e.Entity()
	proj := components.Projectile.Get(e)
	t := components.Transform.Get(e)
	vel := components.Velocity.Get(e)

	proj.Age++
	if proj.Age > cfg.Projectile.MaxAgeTicks || t.Pos.Y() < cfg.Sim.VoidY {
		w.Remove(e)
		return
	}

	from := t.Pos
	to := from.Add(vel.V)

	block, blockOK := traceBlocks(from, to, w.IsSolid)
	blockT := 2.0
	if blockOK {
		blockT = block.t
	}

	for _, hit := range w.entityHits(e, proj, from, to) {
		if hit.t > blockT {
			break
		}
		// An earlier hit's handlers may have removed this target.
		target := w.Entry(hit.id)
		if !w.IsAlive(target) {
			continue
		}
		ev := &HitEvent{
			Projectile: e,
			HitEntity:  target,
			Location:   from.Add(to.Sub(from).Mul(hit.t)),
			Velocity:   vel.V,
		}
		if !w.deliverHit(ev) || !w.Exists(id) {
			return
		}
	}

	if blockOK {
		at := from.Add(to.Sub(from).Mul(blockT))
		if dir := vel.V; dir.LenSqr() > 0 {
			at = at.Sub(dir.Normalize().Mul(impactBackoff))
		}
		pos := block.pos
		ev := &HitEvent{
			Projectile: e,
			HitBlock:   &pos,
			Face:       block.face,
			Location:   at,
			Velocity:   vel.V,
		}
		if !w.deliverHit(ev) || !w.Exists(id) {
			return
		}
		// Cancelled block hit: the projectile stops against the block.
		t.Pos = at
		vel.V = mgl64.Vec3{}
		syncProjectileBody(e, at, at)
		return
	}

	t.Pos = to
	t.LookAlong(vel.V)
	syncProjectileBody(e, to, to)

	vel.V = vel.V.Mul(proj.Drag)
	vel.V[1] -= proj.Gravity
}

// entityHits finds living entities the segment passes through, nearest first.
// The broadphase footprint is stretched over the whole swept segment because
// resolv only checks the cells the object currently occupies.
func (w *World) entityHits(e *donburi.Entry, proj *components.ProjectileData, from, to mgl64.Vec3) []entityHit {
	body := components.Body.Get(e)
	half := body.Width / 2
	syncProjectileBody(e, from, to)

	check := body.Object.Check(0, 0, tags.ResolvLiving)
	if check == nil {
		return nil
	}

	var hits []entityHit
	for _, obj := range check.ObjectsByTags(tags.ResolvLiving) {
		id, ok := obj.Data.(donburi.Entity)
		if !ok {
			continue
		}
		target := w.Entry(id)
		if !w.IsAlive(target) {
			continue
		}
		if id == proj.Shooter && proj.Age <= cfg.Projectile.ShooterGraceTicks {
			continue
		}
		tb := components.Body.Get(target)
		pos := components.Transform.Get(target).Pos
		lo := mgl64.Vec3{pos.X() - tb.Width/2 - half, pos.Y() - half, pos.Z() - tb.Width/2 - half}
		hi := mgl64.Vec3{pos.X() + tb.Width/2 + half, pos.Y() + tb.Height + half, pos.Z() + tb.Width/2 + half}
		if hitT, ok := segmentBox(from, to, lo, hi); ok {
			hits = append(hits, entityHit{id: id, t: hitT})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })
	return hits
}

func syncProjectileBody(e *donburi.Entry, from, to mgl64.Vec3) {
	body := components.Body.Get(e)
	half := body.Width / 2
	minX, maxX := min(from.X(), to.X()), max(from.X(), to.X())
	minZ, maxZ := min(from.Z(), to.Z()), max(from.Z(), to.Z())
	setFootprint(body.Object, minX-half, minZ-half, maxX+half, maxZ+half)
	body.Object.Update()
}

// deliverHit runs the hit handlers and applies the host's default handling.
// It reports whether the projectile keeps flying.
func (w *World) deliverHit(ev *HitEvent) bool {
	id := ev.Projectile.Entity()
	for _, h := range w.hitHandlers {
		h(ev)
	}
	if ev.Cancelled() {
		return true
	}
	// A handler may have removed the projectile and spawned another into
	// its slot.
	if p := w.Entry(id); p != nil {
		w.defaultImpact(ev)
		w.Remove(p)
	}
	return false
}

// defaultImpact is what the host does for a projectile nobody cancelled:
// incendiary fireballs burn what they hit.
func (w *World) defaultImpact(ev *HitEvent) {
	proj := components.Projectile.Get(ev.Projectile)
	if !proj.Incendiary {
		return
	}
	if ev.HitEntity != nil {
		w.Damage(ev.HitEntity, cfg.Sim.FireballDamage, w.Entry(proj.Shooter))
		w.SetFireTicks(ev.HitEntity, cfg.Sim.FireballBurn)
		return
	}
	if ev.HitBlock != nil {
		if above := ev.HitBlock.Relative(ev.Face); w.Block(above) == "air" {
			w.SetBlock(above, "fire")
		}
	}
}
