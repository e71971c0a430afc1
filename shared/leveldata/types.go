// Package leveldata parses arena TMX files. It has no dependencies on donburi
// or resolv; pure data only.
package leveldata

// ArenaData holds everything the simulation needs from one arena file. Block
// coordinates are world block coordinates: X is the tile column, Z the tile
// row and Y the layer level.
type ArenaData struct {
	Blocks      []Block
	SpawnPoints []SpawnPoint
	MobSpawns   []MobSpawn
	Width       int // Blocks along X
	Depth       int // Blocks along Z
	Height      int // Number of Y layers
}

// Block is one solid voxel.
type Block struct {
	X, Y, Z  int
	Material string
}

// SpawnPoint is a player spawn location in block units.
type SpawnPoint struct {
	X, Y, Z float64
	Index   int
}

// MobSpawn places a non-player living entity when the arena loads.
type MobSpawn struct {
	X, Y, Z float64
	Kind    string
	Tags    []string
}
