package sim

import (
	"math"

	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// BlockPos is an integer block coordinate.
type BlockPos struct {
	X, Y, Z int
}

// BlockAt returns the block containing p.
func BlockAt(p mgl64.Vec3) BlockPos {
	return BlockPos{int(math.Floor(p.X())), int(math.Floor(p.Y())), int(math.Floor(p.Z()))}
}

// Center returns the middle of the block.
func (b BlockPos) Center() mgl64.Vec3 {
	return mgl64.Vec3{float64(b.X) + 0.5, float64(b.Y) + 0.5, float64(b.Z) + 0.5}
}

// Relative returns the neighbouring block on the given face.
func (b BlockPos) Relative(face gamemath.BlockFace) BlockPos {
	n := face.Normal()
	return BlockPos{b.X + int(n.X()), b.Y + int(n.Y()), b.Z + int(n.Z())}
}

// blockHit is the first solid block a segment enters.
type blockHit struct {
	pos  BlockPos
	face gamemath.BlockFace
	t    float64 // Fraction of the segment travelled
}

// traceBlocks walks the voxels along from→to (3-D DDA) and returns the first
// one solid reports true for. A segment that starts inside a solid block hits
// it immediately on FaceSelf.
func traceBlocks(from, to mgl64.Vec3, solid func(BlockPos) bool) (blockHit, bool) {
	cur := BlockAt(from)
	if solid(cur) {
		return blockHit{pos: cur, face: gamemath.FaceSelf}, true
	}
	end := BlockAt(to)
	d := to.Sub(from)

	var step [3]int
	var tMax, tDelta [3]float64
	coords := [3]int{cur.X, cur.Y, cur.Z}
	for i := 0; i < 3; i++ {
		switch {
		case d[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / d[i]
			tMax[i] = (math.Floor(from[i]) + 1 - from[i]) * tDelta[i]
		case d[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / d[i]
			tMax[i] = (from[i] - math.Floor(from[i])) * tDelta[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	// Entering a block through its -X side means striking its west face, etc.
	entryFace := [3][2]gamemath.BlockFace{
		{gamemath.East, gamemath.West},
		{gamemath.Up, gamemath.Down},
		{gamemath.South, gamemath.North},
	}

	maxSteps := abs(end.X-cur.X) + abs(end.Y-cur.Y) + abs(end.Z-cur.Z) + 1
	for n := 0; n < maxSteps; n++ {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > 1 {
			return blockHit{}, false
		}
		coords[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		pos := BlockPos{coords[0], coords[1], coords[2]}
		if solid(pos) {
			face := entryFace[axis][0]
			if step[axis] > 0 {
				face = entryFace[axis][1]
			}
			return blockHit{pos: pos, face: face, t: t}, true
		}
	}
	return blockHit{}, false
}

// segmentBox returns the entry fraction of from→to into the box, if any.
func segmentBox(from, to, lo, hi mgl64.Vec3) (float64, bool) {
	d := to.Sub(from)
	tMin, tMax := 0.0, 1.0
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if from[i] < lo[i] || from[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - from[i]) / d[i]
		t2 := (hi[i] - from[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
