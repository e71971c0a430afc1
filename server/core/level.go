package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/yeetables/shared/leveldata"
	"github.com/automoto/yeetables/sim"
)

// FlatArenaSize is the side of the stone floor used when no arena file is
// given.
const FlatArenaSize = 64

// LoadWorld builds the simulation from a TMX arena file, or a flat stone
// arena when path is empty.
func LoadWorld(path string) (*sim.World, error) {
	if path == "" {
		return sim.NewFlat(FlatArenaSize, FlatArenaSize), nil
	}
	data, err := leveldata.LoadArena(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load arena %s: %w", path, err)
	}
	return sim.NewFromArena(data), nil
}
