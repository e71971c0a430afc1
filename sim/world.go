// Package sim is the host world the throwables run in: a small tick-based
// voxel simulation with living entities, projectiles, displays and item drops.
package sim

import (
	"log"
	"math/rand/v2"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/scheduler"
	"github.com/automoto/yeetables/shared/leveldata"
	"github.com/automoto/yeetables/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// HitHandler receives projectile impacts synchronously, while the projectile
// is still in the world.
type HitHandler func(*HitEvent)

// World owns the entity store, the block map and the broadphase space. It is
// not safe for concurrent use: everything runs on the logic thread.
type World struct {
	ecs    *ecs.ECS
	space  *resolv.Space
	blocks map[BlockPos]string
	sched  *scheduler.Scheduler
	rnd    *rand.Rand

	width, depth int
	spawns       []mgl64.Vec3

	hitHandlers []HitHandler
}

// Option configures a World.
type Option func(*World)

// WithRand replaces the world's random source.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rnd = r }
}

// WithSize sets the broadphase extent in blocks.
func WithSize(width, depth int) Option {
	return func(w *World) { w.width, w.depth = width, depth }
}

// New creates an empty world with no blocks.
func New(opts ...Option) *World {
	w := &World{
		blocks: map[BlockPos]string{},
		sched:  scheduler.New(),
		rnd:    rand.New(rand.NewPCG(1, 2)),
		width:  cfg.Sim.DefaultArenaW,
		depth:  cfg.Sim.DefaultArenaD,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.ecs = ecs.NewECS(donburi.NewWorld())
	cell := cfg.Sim.CellSize * spaceScale
	w.space = resolv.NewSpace(w.width*spaceScale, w.depth*spaceScale, cell, cell)

	w.ecs.AddSystem(w.updateLiving)
	w.ecs.AddSystem(w.updateProjectiles)
	w.ecs.AddSystem(w.updateItemDrops)
	w.ecs.AddSystem(w.updateLeashes)
	w.ecs.AddSystem(w.updatePassengers)
	w.ecs.AddSystem(w.updateAutoDestroy)
	return w
}

// NewFromArena builds a world from parsed arena data and spawns its mobs.
func NewFromArena(data *leveldata.ArenaData, opts ...Option) *World {
	opts = append([]Option{WithSize(max(data.Width, 1), max(data.Depth, 1))}, opts...)
	w := New(opts...)
	for _, b := range data.Blocks {
		w.SetBlock(BlockPos{b.X, b.Y, b.Z}, b.Material)
	}
	for _, sp := range data.SpawnPoints {
		w.spawns = append(w.spawns, mgl64.Vec3{sp.X, sp.Y, sp.Z})
	}
	for _, m := range data.MobSpawns {
		w.SpawnMob(m.Kind, mgl64.Vec3{m.X, m.Y, m.Z}, m.Tags...)
	}
	log.Printf("[sim] Loaded arena: %d blocks, %d spawn points, %d mobs, %dx%d",
		len(data.Blocks), len(data.SpawnPoints), len(data.MobSpawns), data.Width, data.Depth)
	return w
}

// NewFlat builds a world with a single stone floor at y=0.
func NewFlat(width, depth int, opts ...Option) *World {
	opts = append([]Option{WithSize(width, depth)}, opts...)
	w := New(opts...)
	for x := 0; x < width; x++ {
		for z := 0; z < depth; z++ {
			w.SetBlock(BlockPos{x, 0, z}, leveldata.DefaultMaterial)
		}
	}
	return w
}

// Tick runs scheduled tasks, then one step of simulation, then delivers world
// events.
func (w *World) Tick() {
	w.sched.Tick()
	w.ecs.Update()
	processEvents(w.ecs.World)
}

// Scheduler returns the world's task scheduler.
func (w *World) Scheduler() *scheduler.Scheduler { return w.sched }

// Donburi returns the underlying entity store.
func (w *World) Donburi() donburi.World { return w.ecs.World }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rnd }

// CurrentTick returns the number of completed ticks.
func (w *World) CurrentTick() uint64 { return w.sched.CurrentTick() }

// OnProjectileHit registers a handler for every projectile impact. Handlers
// run in registration order; a cancelled event stays cancelled.
func (w *World) OnProjectileHit(h HitHandler) {
	w.hitHandlers = append(w.hitHandlers, h)
}

// SpawnPoint returns the i-th arena spawn point, wrapping around, or the
// middle of the arena when none are defined.
func (w *World) SpawnPoint(i int) mgl64.Vec3 {
	if len(w.spawns) == 0 {
		return mgl64.Vec3{float64(w.width) / 2, w.surface(w.width/2, w.depth/2), float64(w.depth) / 2}
	}
	return w.spawns[i%len(w.spawns)]
}

func (w *World) surface(x, z int) float64 {
	for y := 255; y >= -64; y-- {
		if w.IsSolid(BlockPos{x, y, z}) {
			return float64(y + 1)
		}
	}
	return 0
}

// Block returns the material at p, or "air".
func (w *World) Block(p BlockPos) string {
	if m, ok := w.blocks[p]; ok {
		return m
	}
	return "air"
}

// SetBlock places a material; "air" or "" clears the block.
func (w *World) SetBlock(p BlockPos, material string) {
	if material == "" || material == "air" {
		delete(w.blocks, p)
		return
	}
	w.blocks[p] = material
}

// IsSolid reports whether p blocks movement. Fire is not solid.
func (w *World) IsSolid(p BlockPos) bool {
	m, ok := w.blocks[p]
	return ok && m != "fire"
}

// Valid reports whether e still refers to a live entity. donburi reuses
// entries, so an entry is only meaningful within the tick it was obtained in;
// hold on to e.Entity() and resolve it with Entry instead.
func (w *World) Valid(e *donburi.Entry) bool {
	return e != nil && e.Valid()
}

// Exists reports whether id refers to a live entity.
func (w *World) Exists(id donburi.Entity) bool {
	return w.ecs.World.Valid(id)
}

// Entry resolves id, or returns nil once that entity has been removed.
func (w *World) Entry(id donburi.Entity) *donburi.Entry {
	if !w.ecs.World.Valid(id) {
		return nil
	}
	return w.ecs.World.Entry(id)
}

// entityOf is e's id, or donburi.Null for a nil or removed entry.
func entityOf(e *donburi.Entry) donburi.Entity {
	if e == nil || !e.Valid() {
		return donburi.Null
	}
	return e.Entity()
}

// Remove despawns e. Removing an already removed entity is a no-op.
func (w *World) Remove(e *donburi.Entry) {
	if !w.Valid(e) {
		return
	}
	if e.HasComponent(components.Body) {
		if body := components.Body.Get(e); body.Object != nil && body.Object.Space != nil {
			w.space.Remove(body.Object)
		}
	}
	w.ecs.World.Remove(e.Entity())
}

// EntityType names the kind of e ("player", "zombie", "snowball", ...).
func (w *World) EntityType(e *donburi.Entry) string {
	if !w.Valid(e) {
		return ""
	}
	switch {
	case e.HasComponent(components.Living):
		return components.Living.Get(e).Kind
	case e.HasComponent(components.Projectile):
		return components.Projectile.Get(e).Kind.String()
	case e.HasComponent(tags.BlockDisplay):
		return "block_display"
	case e.HasComponent(tags.ItemDisplay):
		return "item_display"
	case e.HasComponent(tags.GrappleAnchor):
		return "leash_anchor"
	case e.HasComponent(tags.ItemDrop):
		return "item"
	}
	return "unknown"
}

// Tags returns e's scoreboard tags. The map must not be modified.
func (w *World) Tags(e *donburi.Entry) map[string]struct{} {
	if !w.Valid(e) || !e.HasComponent(components.Living) {
		return nil
	}
	return components.Living.Get(e).Tags
}
