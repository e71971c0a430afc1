package sim

import (
	"github.com/automoto/yeetables/archetypes"
	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// SpawnPlayer creates a player standing at pos.
func (w *World) SpawnPlayer(id uuid.UUID, name string, pos mgl64.Vec3) *donburi.Entry {
	e := archetypes.Player.Spawn(w.ecs.World)
	components.Player.Set(e, &components.PlayerData{ID: id, Name: name})
	components.Living.Set(e, &components.LivingData{
		Kind:      "player",
		Health:    cfg.Sim.PlayerHealth,
		MaxHealth: cfg.Sim.PlayerHealth,
		Effects:   map[string]components.PotionEffect{},
		Tags:      map[string]struct{}{},
	})
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	w.attachBody(e, cfg.Sim.PlayerWidth, cfg.Sim.PlayerHeight, tags.ResolvLiving)
	return e
}

// SpawnMob creates a non-player living entity.
func (w *World) SpawnMob(kind string, pos mgl64.Vec3, scoreboardTags ...string) *donburi.Entry {
	e := archetypes.Mob.Spawn(w.ecs.World)
	ts := make(map[string]struct{}, len(scoreboardTags))
	for _, t := range scoreboardTags {
		ts[t] = struct{}{}
	}
	components.Living.Set(e, &components.LivingData{
		Kind:      kind,
		Health:    cfg.Sim.MobHealth,
		MaxHealth: cfg.Sim.MobHealth,
		Effects:   map[string]components.PotionEffect{},
		Tags:      ts,
	})
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	w.attachBody(e, cfg.Sim.PlayerWidth, cfg.Sim.PlayerHeight, tags.ResolvLiving)
	return e
}

// spaceScale is resolv units per block. resolv works out an object's cells
// from X+W-1, so it needs bodies at least one unit wide.
const spaceScale = 16

// setFootprint places obj over [minX,maxX] x [minZ,maxZ], given in blocks.
func setFootprint(obj *resolv.Object, minX, minZ, maxX, maxZ float64) {
	obj.X = minX * spaceScale
	obj.Y = minZ * spaceScale
	obj.W = (maxX-minX)*spaceScale + 1
	obj.H = (maxZ-minZ)*spaceScale + 1
}

// attachBody puts e's footprint into the broadphase space.
func (w *World) attachBody(e *donburi.Entry, width, height float64, resolvTags ...string) {
	pos := components.Transform.Get(e).Pos
	obj := resolv.NewObject(0, 0, 0, 0, resolvTags...)
	setFootprint(obj, pos.X()-width/2, pos.Z()-width/2, pos.X()+width/2, pos.Z()+width/2)
	obj.SetShape(resolv.NewRectangle(0, 0, width*spaceScale, width*spaceScale))
	obj.Data = e.Entity()
	w.space.Add(obj)
	components.Body.Set(e, &components.BodyData{Width: width, Height: height, Object: obj})
}

// syncBody moves e's broadphase footprint to its transform.
func syncBody(e *donburi.Entry) {
	if !e.HasComponent(components.Body) {
		return
	}
	body := components.Body.Get(e)
	if body.Object == nil {
		return
	}
	pos := components.Transform.Get(e).Pos
	half := body.Width / 2
	setFootprint(body.Object, pos.X()-half, pos.Z()-half, pos.X()+half, pos.Z()+half)
	body.Object.Update()
}

// FindPlayer returns the live player entity with the given id, or nil.
func (w *World) FindPlayer(id uuid.UUID) *donburi.Entry {
	var found *donburi.Entry
	tags.Player.Each(w.ecs.World, func(e *donburi.Entry) {
		if found == nil && components.Player.Get(e).ID == id {
			found = e
		}
	})
	return found
}

// IsAlive reports whether e is valid and, if living, not dead.
func (w *World) IsAlive(e *donburi.Entry) bool {
	if !w.Valid(e) {
		return false
	}
	if e.HasComponent(components.Living) {
		return !components.Living.Get(e).Dead
	}
	return true
}

// Location returns e's position.
func (w *World) Location(e *donburi.Entry) (mgl64.Vec3, bool) {
	if !w.Valid(e) || !e.HasComponent(components.Transform) {
		return mgl64.Vec3{}, false
	}
	return components.Transform.Get(e).Pos, true
}

// EyeLocation returns the position a living entity looks from.
func (w *World) EyeLocation(e *donburi.Entry) (mgl64.Vec3, bool) {
	pos, ok := w.Location(e)
	if !ok {
		return pos, false
	}
	if e.HasComponent(components.Living) {
		pos[1] += cfg.Projectile.EyeHeight
	}
	return pos, true
}

// Direction returns e's unit look vector.
func (w *World) Direction(e *donburi.Entry) (mgl64.Vec3, bool) {
	if !w.Valid(e) || !e.HasComponent(components.Transform) {
		return mgl64.Vec3{}, false
	}
	return components.Transform.Get(e).Direction(), true
}

// Teleport moves e to pos without touching its look direction or velocity.
func (w *World) Teleport(e *donburi.Entry, pos mgl64.Vec3) bool {
	if !w.Valid(e) || !e.HasComponent(components.Transform) {
		return false
	}
	components.Transform.Get(e).Pos = pos
	syncBody(e)
	return true
}

// SetLook points e along yaw and pitch, in degrees.
func (w *World) SetLook(e *donburi.Entry, yaw, pitch float64) {
	if !w.Valid(e) || !e.HasComponent(components.Transform) {
		return
	}
	t := components.Transform.Get(e)
	t.Yaw, t.Pitch = yaw, pitch
}

// Velocity returns e's velocity in blocks per tick.
func (w *World) Velocity(e *donburi.Entry) (mgl64.Vec3, bool) {
	if !w.Valid(e) || !e.HasComponent(components.Velocity) {
		return mgl64.Vec3{}, false
	}
	return components.Velocity.Get(e).V, true
}

// SetVelocity replaces e's velocity.
func (w *World) SetVelocity(e *donburi.Entry, v mgl64.Vec3) bool {
	if !w.Valid(e) || !e.HasComponent(components.Velocity) {
		return false
	}
	components.Velocity.Get(e).V = v
	return true
}

// AddVelocity adds dv to e's velocity.
func (w *World) AddVelocity(e *donburi.Entry, dv mgl64.Vec3) bool {
	if !w.Valid(e) || !e.HasComponent(components.Velocity) {
		return false
	}
	vel := components.Velocity.Get(e)
	vel.V = vel.V.Add(dv)
	return true
}

// SpawnBlockDisplay creates a block display at pos. Material "air" makes an
// invisible display.
func (w *World) SpawnBlockDisplay(pos mgl64.Vec3, material string, transform mgl64.Mat4) *donburi.Entry {
	e := archetypes.BlockDisplay.Spawn(w.ecs.World)
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	components.Display.Set(e, &components.DisplayData{
		Kind:      components.BlockDisplay,
		Material:  material,
		Transform: transform,
		ViewRange: cfg.Render.ViewRange,
	})
	return e
}

// SpawnItemDisplay creates an item display at pos.
func (w *World) SpawnItemDisplay(pos mgl64.Vec3, item *components.ItemStack, transform mgl64.Mat4) *donburi.Entry {
	e := archetypes.ItemDisplay.Spawn(w.ecs.World)
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	components.Display.Set(e, &components.DisplayData{
		Kind:      components.ItemDisplay,
		Item:      item.Clone(),
		Transform: transform,
		ViewRange: cfg.Render.ViewRange,
	})
	return e
}

// SetDisplayTransform replaces a display's transformation.
func (w *World) SetDisplayTransform(e *donburi.Entry, m mgl64.Mat4) bool {
	if !w.Valid(e) || !e.HasComponent(components.Display) {
		return false
	}
	components.Display.Get(e).Transform = m
	return true
}

// Mount makes passenger ride vehicle. Only displays can ride.
func (w *World) Mount(passenger, vehicle *donburi.Entry) bool {
	if !w.Valid(passenger) || !w.Valid(vehicle) || !passenger.HasComponent(components.Mount) {
		return false
	}
	components.Mount.Get(passenger).Vehicle = vehicle.Entity()
	if pos, ok := w.Location(vehicle); ok {
		w.Teleport(passenger, pos)
	}
	return true
}

// Dismount detaches passenger from whatever it rides.
func (w *World) Dismount(passenger *donburi.Entry) {
	if w.Valid(passenger) && passenger.HasComponent(components.Mount) {
		components.Mount.Get(passenger).Vehicle = donburi.Null
	}
}

// Vehicle returns what passenger rides, or nil.
func (w *World) Vehicle(passenger *donburi.Entry) *donburi.Entry {
	if !w.Valid(passenger) || !passenger.HasComponent(components.Mount) {
		return nil
	}
	return w.Entry(components.Mount.Get(passenger).Vehicle)
}

// SpawnLeashAnchor creates the invisible anchor a grapple lead is tied to.
func (w *World) SpawnLeashAnchor(pos mgl64.Vec3, holder *donburi.Entry) *donburi.Entry {
	e := archetypes.GrappleAnchor.Spawn(w.ecs.World)
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	components.Leash.Set(e, &components.LeashData{Holder: entityOf(holder)})
	return e
}

// LeashHolder returns the entity holding e's lead, or nil.
func (w *World) LeashHolder(e *donburi.Entry) *donburi.Entry {
	if !w.Valid(e) || !e.HasComponent(components.Leash) {
		return nil
	}
	return w.Entry(components.Leash.Get(e).Holder)
}

// Unleash releases e's lead. With dropLead a lead item falls where e is.
func (w *World) Unleash(e *donburi.Entry, dropLead bool) {
	if !w.Valid(e) || !e.HasComponent(components.Leash) {
		return
	}
	leash := components.Leash.Get(e)
	if leash.Holder == donburi.Null {
		return
	}
	leash.Holder = donburi.Null
	if dropLead {
		if pos, ok := w.Location(e); ok {
			w.DropItem(pos, components.ItemStack{Material: "lead", Amount: 1})
		}
	}
}

// DropItem places an item entity at pos.
func (w *World) DropItem(pos mgl64.Vec3, stack components.ItemStack) *donburi.Entry {
	e := archetypes.ItemDrop.Spawn(w.ecs.World)
	components.Transform.Set(e, &components.TransformData{Pos: pos})
	components.ItemDrop.Set(e, &components.ItemDropData{Item: stack})
	components.Velocity.Set(e, &components.VelocityData{V: mgl64.Vec3{
		(w.rnd.Float64() - 0.5) * 0.2,
		0.2,
		(w.rnd.Float64() - 0.5) * 0.2,
	}})
	components.AutoDestroy.Set(e, &components.AutoDestroyData{TicksRemaining: cfg.Sim.ItemDespawnTicks})
	return e
}

// Damage hurts a living target. source may be nil.
func (w *World) Damage(target *donburi.Entry, amount float64, source *donburi.Entry) bool {
	if amount <= 0 || !w.IsAlive(target) || !target.HasComponent(components.Living) {
		return false
	}
	if target.HasComponent(components.Player) && components.Player.Get(target).Creative {
		return false
	}
	living := components.Living.Get(target)
	living.Health -= amount
	living.LastHurt = entityOf(source)
	EntityDamaged.Publish(w.ecs.World, Damaged{Entity: target.Entity(), Amount: amount, Source: living.LastHurt})
	if living.Health <= 0 {
		w.kill(target)
	}
	return true
}

func (w *World) kill(e *donburi.Entry) {
	living := components.Living.Get(e)
	living.Health = 0
	living.Dead = true
	living.FireTicks = 0
	clear(living.Effects)
	EntityDied.Publish(w.ecs.World, Died{Entity: e.Entity(), Killer: living.LastHurt, Kind: living.Kind})
}

// Respawn brings a dead player back at pos with full health.
func (w *World) Respawn(e *donburi.Entry, pos mgl64.Vec3) {
	if !w.Valid(e) || !e.HasComponent(components.Living) {
		return
	}
	living := components.Living.Get(e)
	living.Dead = false
	living.Health = living.MaxHealth
	living.LastHurt = donburi.Null
	w.SetVelocity(e, mgl64.Vec3{})
	w.Teleport(e, pos)
}

// SetFireTicks sets a living entity on fire for ticks.
func (w *World) SetFireTicks(e *donburi.Entry, ticks int) bool {
	if !w.IsAlive(e) || !e.HasComponent(components.Living) {
		return false
	}
	living := components.Living.Get(e)
	living.FireTicks = max(living.FireTicks, ticks)
	return true
}

// AddPotionEffect applies or refreshes a status effect.
func (w *World) AddPotionEffect(e *donburi.Entry, name string, ticks, amplifier int) bool {
	if ticks <= 0 || !w.IsAlive(e) || !e.HasComponent(components.Living) {
		return false
	}
	amplifier = min(max(amplifier, 0), cfg.Sim.MaxAmplifier)
	living := components.Living.Get(e)
	if living.Effects == nil {
		living.Effects = map[string]components.PotionEffect{}
	}
	if cur, ok := living.Effects[name]; ok && cur.Amplifier > amplifier {
		return false
	}
	living.Effects[name] = components.PotionEffect{Amplifier: amplifier, Ticks: ticks}
	return true
}
