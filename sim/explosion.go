package sim

import (
	"math"

	"github.com/automoto/yeetables/components"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Blocks explosions never break.
var blastProof = map[string]bool{
	"bedrock":  true,
	"obsidian": true,
	"barrier":  true,
}

// CreateExplosion damages and throws back living entities within 2*power
// blocks of center. breakBlocks clears blocks within power blocks; fire
// lights some of the cleared space. source is credited with the damage and
// may be nil.
func (w *World) CreateExplosion(center mgl64.Vec3, power float64, fire, breakBlocks bool, source *donburi.Entry) {
	if power <= 0 {
		return
	}
	radius := 2 * power

	var victims []*donburi.Entry
	components.Living.Each(w.ecs.World, func(e *donburi.Entry) {
		if !components.Living.Get(e).Dead {
			victims = append(victims, e)
		}
	})
	for _, e := range victims {
		pos := components.Transform.Get(e).Pos
		delta := pos.Sub(center)
		dist := delta.Len()
		if dist > radius {
			continue
		}
		impact := 1 - dist/radius
		w.Damage(e, math.Floor((impact*impact+impact)/2*7*radius+1), source)
		dir := mgl64.Vec3{0, 1, 0}
		if dist > 1e-6 {
			dir = delta.Mul(1 / dist)
		}
		w.AddVelocity(e, dir.Mul(impact))
	}

	if breakBlocks || fire {
		r := int(math.Ceil(power))
		c := BlockAt(center)
		for x := c.X - r; x <= c.X+r; x++ {
			for y := c.Y - r; y <= c.Y+r; y++ {
				for z := c.Z - r; z <= c.Z+r; z++ {
					p := BlockPos{x, y, z}
					if p.Center().Sub(center).Len() > power {
						continue
					}
					if breakBlocks && w.IsSolid(p) && !blastProof[w.Block(p)] {
						w.SetBlock(p, "air")
					}
					if fire && w.Block(p) == "air" && w.IsSolid(BlockPos{x, y - 1, z}) && w.rnd.IntN(3) == 0 {
						w.SetBlock(p, "fire")
					}
				}
			}
		}
	}

	Explosion.Publish(w.ecs.World, Exploded{Center: center, Power: power, Source: entityOf(source)})
}
