package gamemath

import "github.com/go-gl/mathgl/mgl64"

// BlockFace identifies the side of a block that was struck.
type BlockFace int

const (
	FaceSelf BlockFace = iota
	North              // -Z
	South              // +Z
	East               // +X
	West               // -X
	Up                 // +Y
	Down               // -Y
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var faceNames = map[BlockFace]string{
	FaceSelf:  "self",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	Up:        "up",
	Down:      "down",
	NorthEast: "north_east",
	NorthWest: "north_west",
	SouthEast: "south_east",
	SouthWest: "south_west",
}

func (f BlockFace) String() string {
	if name, ok := faceNames[f]; ok {
		return name
	}
	return "unknown"
}

// Normal returns the outward unit normal of axis-aligned faces and the zero
// vector for everything else.
func (f BlockFace) Normal() mgl64.Vec3 {
	switch f {
	case North:
		return mgl64.Vec3{0, 0, -1}
	case South:
		return mgl64.Vec3{0, 0, 1}
	case East:
		return mgl64.Vec3{1, 0, 0}
	case West:
		return mgl64.Vec3{-1, 0, 0}
	case Up:
		return mgl64.Vec3{0, 1, 0}
	case Down:
		return mgl64.Vec3{0, -1, 0}
	}
	return mgl64.Vec3{}
}

// Reflect flips the velocity component along the face's axis. Faces that are
// not axis-aligned flip the whole vector.
func Reflect(v mgl64.Vec3, face BlockFace) mgl64.Vec3 {
	switch face {
	case North, South:
		v[2] = -v[2]
	case East, West:
		v[0] = -v[0]
	case Up, Down:
		v[1] = -v[1]
	default:
		v = v.Mul(-1)
	}
	return v
}
