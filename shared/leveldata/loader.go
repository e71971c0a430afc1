package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// DefaultMaterial is used for tiles without a "material" property.
const DefaultMaterial = "stone"

// LoadArena parses a TMX arena. Tile layers named y0, y1, ... are the block
// layers for that Y level; other tile layers are ignored. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &ArenaData{
		Width: levelMap.Width,
		Depth: levelMap.Height,
	}

	for _, layer := range levelMap.Layers {
		y, ok := layerLevel(layer.Name)
		if !ok {
			continue
		}
		if y+1 > data.Height {
			data.Height = y + 1
		}
		for z := 0; z < levelMap.Height; z++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[z*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				material := DefaultMaterial
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if m := tilesetTile.Properties.GetString("material"); m != "" {
						material = strings.ToLower(m)
					}
				}

				data.Blocks = append(data.Blocks, Block{X: x, Y: y, Z: z, Material: material})
			}
		}
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "PlayerSpawn":
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X / tileW,
					Y:     float64(o.Properties.GetInt("y")),
					Z:     o.Y / tileH,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case "Mobs":
			for _, o := range og.Objects {
				kind := o.Properties.GetString("kind")
				if kind == "" {
					kind = o.Name
				}
				var tags []string
				if raw := o.Properties.GetString("tags"); raw != "" {
					for _, t := range strings.Split(raw, ",") {
						if t = strings.TrimSpace(t); t != "" {
							tags = append(tags, t)
						}
					}
				}
				data.MobSpawns = append(data.MobSpawns, MobSpawn{
					X:    o.X / tileW,
					Y:    float64(o.Properties.GetInt("y")),
					Z:    o.Y / tileH,
					Kind: kind,
					Tags: tags,
				})
			}
		}
	}

	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Index < data.SpawnPoints[j].Index
	})

	return data, nil
}

// layerLevel parses "y<N>" layer names.
func layerLevel(name string) (int, bool) {
	if !strings.HasPrefix(name, "y") {
		return 0, false
	}
	y, err := strconv.Atoi(name[1:])
	if err != nil || y < 0 {
		return 0, false
	}
	return y, true
}

// LoadAllArenas discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*ArenaData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*ArenaData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		arenas[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return arenas, names, nil
}
