package definitions

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"slices"
	"sort"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
)

// File names inside the data directory.
const (
	SettingsFile  = "config.yml"
	ItemsFile     = "items.yml"
	YeetablesFile = "yeetables.yml"
)

//go:embed defaults/*.yml
var defaultFiles embed.FS

// ErrUnknownItem is returned for custom item ids that are not loaded.
var ErrUnknownItem = errors.New("unknown custom item")

// Registry owns the loaded definitions, custom items and settings. It is not
// safe for concurrent use; reloads run on the logic thread.
type Registry struct {
	fsys     fs.FS
	defs     []*Definition
	byID     map[string]*Definition
	items    map[string]*CustomItem
	settings cfg.Settings
}

// NewRegistry creates a registry reading from fsys. Files missing from fsys
// (or a nil fsys) fall back to the built-in defaults. Call Reload to load.
func NewRegistry(fsys fs.FS) *Registry {
	return &Registry{
		fsys:     fsys,
		byID:     map[string]*Definition{},
		items:    map[string]*CustomItem{},
		settings: cfg.DefaultSettings(),
	}
}

// Reload clears everything and reads all three files again. A file that fails
// to parse leaves its part of the registry at defaults/empty; the errors are
// returned joined after everything that could load has loaded.
func (r *Registry) Reload() error {
	r.defs = nil
	r.byID = map[string]*Definition{}
	r.items = map[string]*CustomItem{}
	r.settings = cfg.DefaultSettings()

	var errs []error

	if data, err := r.readFile(SettingsFile); err != nil {
		errs = append(errs, err)
	} else if s, err := parseSettings(data); err != nil {
		errs = append(errs, err)
	} else {
		r.settings = s
	}

	// Items first: item-display renders may reference them.
	if data, err := r.readFile(ItemsFile); err != nil {
		errs = append(errs, err)
	} else if items, err := parseItems(data); err != nil {
		errs = append(errs, err)
	} else {
		r.items = items
	}

	if data, err := r.readFile(YeetablesFile); err != nil {
		errs = append(errs, err)
	} else if defs, err := parseYeetables(data, r.items); err != nil {
		errs = append(errs, err)
	} else {
		for _, def := range defs {
			if _, dup := r.byID[def.ID]; dup {
				log.Printf("[definitions] Duplicate yeetable id %q, keeping the first", def.ID)
				continue
			}
			r.byID[def.ID] = def
			r.defs = append(r.defs, def)
		}
	}

	log.Printf("[definitions] Loaded %d custom items and %d yeetables", len(r.items), len(r.defs))
	return errors.Join(errs...)
}

func (r *Registry) readFile(name string) ([]byte, error) {
	if r.fsys != nil {
		data, err := fs.ReadFile(r.fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	}
	data, err := defaultFiles.ReadFile("defaults/" + name)
	if err != nil {
		return nil, fmt.Errorf("read default %s: %w", name, err)
	}
	return data, nil
}

// ByID returns the definition with the given id, or nil.
func (r *Registry) ByID(id string) *Definition {
	return r.byID[id]
}

// All returns every loaded definition in file order, enabled or not.
func (r *Registry) All() []*Definition {
	return slices.Clone(r.defs)
}

// Enabled returns the enabled definitions in file order.
func (r *Registry) Enabled() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		if def.Enabled {
			out = append(out, def)
		}
	}
	return out
}

// FindMatch returns the most specific enabled definition matching the stack,
// or nil. Ties go to the definition that appears first in the file.
func (r *Registry) FindMatch(s *components.ItemStack) *Definition {
	if s.Empty() {
		return nil
	}
	var best *Definition
	bestScore := -1
	for _, def := range r.defs {
		if !def.Enabled || !def.Matcher.Matches(s) {
			continue
		}
		if score := def.Matcher.Specificity(); score > bestScore {
			best, bestScore = def, score
		}
	}
	return best
}

// CustomItem returns the custom item template with the given id.
func (r *Registry) CustomItem(id string) (*CustomItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}
	return item, nil
}

// CustomItemIDs returns the loaded custom item ids, sorted.
func (r *Registry) CustomItemIDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Settings returns the global settings from config.yml.
func (r *Registry) Settings() cfg.Settings {
	return r.settings
}
