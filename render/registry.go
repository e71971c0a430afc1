package render

import (
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/sim"
	"github.com/yohamta/donburi"
)

// Registry tracks the live renderers of one world. Ids start at 1 and are
// never reused.
type Registry struct {
	world  *sim.World
	nextID int
	active map[int]*Renderer
}

func NewRegistry(w *sim.World) *Registry {
	return &Registry{
		world:  w,
		active: map[int]*Renderer{},
	}
}

// Spawn creates a rig for the carrier. Simple renders need none and return
// nil, as does a carrier that is already gone.
func (reg *Registry) Spawn(carrier *donburi.Entry, spec definitions.RenderSpec, gravityMult float64) *Renderer {
	if !reg.world.IsAlive(carrier) {
		return nil
	}

	r := newRenderer(reg, carrier, gravityMult)
	switch s := spec.(type) {
	case definitions.BlockDisplayRender:
		r.spawnBlocks(s)
	case definitions.ItemDisplayRender:
		r.spawnItem(s)
	default:
		return nil
	}

	reg.nextID++
	r.id = reg.nextID
	reg.active[r.id] = r
	r.start()
	return r
}

// Get returns the live renderer with the given id, or nil.
func (reg *Registry) Get(id int) *Renderer {
	return reg.active[id]
}

// Release removes the renderer with the given id. Unknown ids are ignored.
func (reg *Registry) Release(id int) {
	if r, ok := reg.active[id]; ok {
		r.Remove()
	}
}

// Len returns the number of live renderers.
func (reg *Registry) Len() int { return len(reg.active) }

// RemoveAll tears down every live renderer.
func (reg *Registry) RemoveAll() {
	for _, r := range reg.active {
		r.Remove()
	}
}

func (reg *Registry) forget(id int) {
	delete(reg.active, id)
}
