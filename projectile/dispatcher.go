// Package projectile launches throwables and turns their impacts into damage,
// knockback, feedback and ability effects.
package projectile

import (
	"errors"
	"log"
	"math/rand/v2"
	"time"

	"github.com/automoto/yeetables/ability"
	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/feedback"
	"github.com/automoto/yeetables/render"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

var (
	ErrInvalidActor = errors.New("actor is not a live player")
	ErrNoMatch      = errors.New("held item is not a throwable")
	ErrOnCooldown   = errors.New("throwable is on cooldown")
)

// Definitions is the lookup the dispatcher needs from the loaded
// configuration.
type Definitions interface {
	ByID(id string) *definitions.Definition
	FindMatch(s *components.ItemStack) *definitions.Definition
	Settings() cfg.Settings
}

// Dispatcher owns every piece of runtime state for one world: cooldowns,
// live renderers and grapple sessions.
type Dispatcher struct {
	world *sim.World
	defs  Definitions
	sink  feedback.Sink

	renderers *render.Registry
	grapples  *ability.Grapples
	cooldowns *Cooldowns

	now func() time.Time
	rnd *rand.Rand
}

type Option func(*Dispatcher)

// WithFeedback sets where sounds and particles go. The default drops them.
func WithFeedback(sink feedback.Sink) Option {
	return func(d *Dispatcher) { d.sink = sink }
}

// WithClock replaces the wall clock used for cooldowns.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithRand replaces the random source for accuracy offsets.
func WithRand(r *rand.Rand) Option {
	return func(d *Dispatcher) { d.rnd = r }
}

// New creates a dispatcher and registers it for the world's projectile hits.
func New(w *sim.World, defs Definitions, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		world: w,
		defs:  defs,
		sink:  feedback.Nop{},
		now:   time.Now,
		rnd:   w.Rand(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.renderers = render.NewRegistry(w)
	d.grapples = ability.NewGrapples(w)
	d.cooldowns = NewCooldowns(d.now)

	w.OnProjectileHit(d.OnProjectileHit)
	return d
}

func (d *Dispatcher) World() *sim.World               { return d.world }
func (d *Dispatcher) Settings() cfg.Settings          { return d.defs.Settings() }
func (d *Dispatcher) Feedback() feedback.Sink         { return d.sink }
func (d *Dispatcher) Renderers() *render.Registry     { return d.renderers }
func (d *Dispatcher) Grapples() *ability.Grapples     { return d.grapples }
func (d *Dispatcher) Cooldowns() *Cooldowns           { return d.cooldowns }
func (d *Dispatcher) SetDefinitions(defs Definitions) { d.defs = defs }

// Interact launches whatever throwable the player holds in the main hand.
func (d *Dispatcher) Interact(player *donburi.Entry) (*donburi.Entry, error) {
	if !d.world.IsAlive(player) || !player.HasComponent(components.Player) {
		return nil, ErrInvalidActor
	}
	pd := components.Player.Get(player)
	def := d.defs.FindMatch(pd.MainHand())
	if def == nil {
		return nil, ErrNoMatch
	}
	if d.cooldowns.Active(pd.ID, def.ID, def.Properties.Cooldown) {
		return nil, ErrOnCooldown
	}
	return d.Launch(player, def)
}

// Launch throws def from the actor's eyes along its look direction. Grapple
// definitions fire an arrow hook; everything else is thrown as a snowball.
func (d *Dispatcher) Launch(actor *donburi.Entry, def *definitions.Definition) (*donburi.Entry, error) {
	if !d.world.IsAlive(actor) || !actor.HasComponent(components.Player) {
		return nil, ErrInvalidActor
	}
	pd := components.Player.Get(actor)
	props := def.Properties
	kind := ability.ParseKind(def.Ability)

	eye, _ := d.world.EyeLocation(actor)
	look, _ := d.world.Direction(actor)
	vel := gamemath.PerturbDirection(look, props.AccuracyOffset, d.rnd.Float64).Mul(props.Speed)

	var proj *donburi.Entry
	if kind == ability.KindGrapple || def.ProjectileType == "arrow" {
		proj = d.world.SpawnProjectile(components.Arrow, actor, eye, vel, nil)
		components.Projectile.Get(proj).NoPickup = true
		donburi.Add(proj, components.YeetTag, &components.YeetTagData{DefinitionID: def.ID})
		if kind == ability.KindGrapple {
			slot := pd.HeldSlot
			if def.Consumption == definitions.ConsumeOffHand {
				slot = ability.OffHandSlot
			}
			d.grapples.Launch(actor, proj, slot, def.Options)
		}
	} else {
		proj = d.world.SpawnProjectile(components.Snowball, actor, eye, vel, carrierItem(def))
		tag := &components.YeetTagData{DefinitionID: def.ID}
		if kind.UsesBounces() {
			tag.HasBounces = true
			tag.Bounces = def.Options.Int("num-bounces", cfg.Bounce.DefaultBounces)
		}
		d.dress(proj, def, tag)
	}

	d.playLaunchSound(actor, def)
	consume(pd, def.Consumption)
	d.cooldowns.Set(pd.ID, def.ID)
	return proj, nil
}

// SpawnBouncedProjectile continues a bounce chain with a brand new snowball.
// The projectile that bounced is never reused.
func (d *Dispatcher) SpawnBouncedProjectile(shooter *donburi.Entry, at, vel mgl64.Vec3, def *definitions.Definition, remaining int) *donburi.Entry {
	proj := d.world.SpawnProjectile(components.Snowball, shooter, at, vel, carrierItem(def))
	d.dress(proj, def, &components.YeetTagData{
		DefinitionID: def.ID,
		HasBounces:   true,
		Bounces:      remaining,
	})
	return proj
}

// dress tags a snowball and attaches the definition's renderer, if any.
func (d *Dispatcher) dress(proj *donburi.Entry, def *definitions.Definition, tag *components.YeetTagData) {
	if r := d.renderers.Spawn(proj, def.Render, def.Properties.GravityMultiplier); r != nil {
		tag.RendererID = r.ID()
		if d.Settings().HideDisplayProjectiles {
			d.world.SetProjectileItem(proj, nil)
		}
	}
	donburi.Add(proj, components.YeetTag, tag)
}

// OnProjectileHit routes a hit to the grapple that owns the hook, or to
// HandleHit.
func (d *Dispatcher) OnProjectileHit(ev *sim.HitEvent) {
	if d.grapples.OnHookHit(ev) {
		return
	}
	d.HandleHit(ev)
}

// HandleHit resolves the impact of a tagged projectile. Untagged projectiles
// are left alone.
func (d *Dispatcher) HandleHit(ev *sim.HitEvent) {
	proj := ev.Projectile
	if !d.world.Valid(proj) || !proj.HasComponent(components.YeetTag) {
		return
	}
	tag := *components.YeetTag.Get(proj)

	def := d.defs.ByID(tag.DefinitionID)
	if def == nil {
		log.Printf("[dispatch] Unknown yeetable id %q", tag.DefinitionID)
		return
	}

	if tag.RendererID != 0 {
		d.renderers.Release(tag.RendererID)
	}

	kind := ability.ParseKind(def.Ability)
	at := impactLocation(d.world, ev)

	// Abilities may remove entities and spawn new ones into the freed slots,
	// so the parties are pinned by id before any of them run.
	parties := hitParties{shooter: entityOf(d.world.Shooter(proj)), target: entityOf(ev.HitEntity)}
	destroy := true
	if kind != ability.KindNone {
		// Emitted first so a bounce looks like it happened where it hit.
		d.spawnImpactParticles(at, def)
		destroy = ability.Dispatch(kind, d, ability.Hit{Event: ev, Def: def, Bounces: tag.Bounces})
	}
	if destroy {
		d.applyHitEffects(ev, parties, def, kind, at)
	}
}

type hitParties struct {
	shooter donburi.Entity
	target  donburi.Entity
}

func entityOf(e *donburi.Entry) donburi.Entity {
	if e == nil || !e.Valid() {
		return donburi.Null
	}
	return e.Entity()
}

func (d *Dispatcher) applyHitEffects(ev *sim.HitEvent, parties hitParties, def *definitions.Definition, kind ability.Kind, at mgl64.Vec3) {
	props := def.Properties
	if kind == ability.KindNone {
		d.spawnImpactParticles(at, def)
	}
	if s := def.Sounds; s != nil && s.Impact != "" {
		d.sink.PlaySound(at, s.Impact, s.Volume, s.Pitch)
	}

	if target := d.world.Entry(parties.target); target != nil && target.HasComponent(components.Living) {
		shooter := d.world.Entry(parties.shooter)
		if props.Damage > 0 {
			d.world.Damage(target, props.Damage, shooter)
		}
		if props.KnockbackStrength > 0 || props.KnockbackVertical > 0 {
			targetPos, _ := d.world.Location(target)
			kb := gamemath.Knockback(ev.Velocity, ev.Location, targetPos,
				props.KnockbackStrength, props.KnockbackVertical, cfg.Knockback.DegenerateVelocitySq)
			d.world.AddVelocity(target, kb)
		}
	}

	if props.DropOnBreak != "" {
		d.world.DropItem(ev.Location, components.ItemStack{Material: props.DropOnBreak, Amount: 1})
	}
}

func (d *Dispatcher) spawnImpactParticles(at mgl64.Vec3, def *definitions.Definition) {
	p := def.Particles
	if p.Count <= 0 {
		return
	}
	d.sink.SpawnParticles(at, def.ParticleMaterial(cfg.Particles.DefaultMaterial), p.Count, p.Spread, p.Speed)
}

func (d *Dispatcher) playLaunchSound(actor *donburi.Entry, def *definitions.Definition) {
	at, _ := d.world.Location(actor)
	if s := def.Sounds; s != nil && s.Launch != "" {
		d.sink.PlaySound(at, s.Launch, s.Volume, s.Pitch)
		return
	}
	d.sink.PlaySound(at, cfg.SoundSnowballThrow, cfg.Audio.DefaultVolume, cfg.Audio.DefaultPitch)
}

// Close tears down every renderer and grapple session.
func (d *Dispatcher) Close() {
	d.renderers.RemoveAll()
	d.grapples.CloseAll()
}

// impactLocation is where impact feedback plays: the struck entity, the
// centre of the struck block, or the projectile.
func impactLocation(w *sim.World, ev *sim.HitEvent) mgl64.Vec3 {
	if ev.HitEntity != nil {
		if pos, ok := w.Location(ev.HitEntity); ok {
			return pos
		}
	}
	if ev.HitBlock != nil {
		return ev.HitBlock.Center()
	}
	return ev.Location
}

// carrierItem is what a thrown snowball visibly shows before any hide policy.
func carrierItem(def *definitions.Definition) *components.ItemStack {
	if s, ok := def.Render.(definitions.SimpleRender); ok && s.Material != "" {
		return &components.ItemStack{Material: s.Material, Amount: 1}
	}
	return &components.ItemStack{Material: "snowball", Amount: 1}
}

// consume takes one item from the hand the definition names. Creative players
// and NONE consume nothing; an empty off hand is left alone.
func consume(p *components.PlayerData, mode definitions.Consumption) {
	if p.Creative || mode == definitions.ConsumeNone {
		return
	}
	if mode == definitions.ConsumeOffHand {
		if p.OffHand.Empty() {
			return
		}
		p.OffHand.Amount--
		p.SetOffHand(p.OffHand)
		return
	}
	if s := p.MainHand(); !s.Empty() {
		s.Amount--
		p.SetMainHand(s)
	}
}
