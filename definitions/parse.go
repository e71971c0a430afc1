package definitions

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

type yeetablesFile struct {
	Yeetables []yaml.Node `yaml:"yeetables"`
}

type rawYeetable struct {
	ID              string         `yaml:"id"`
	Enabled         *bool          `yaml:"enabled"`
	Item            *rawMatcher    `yaml:"item"`
	Properties      rawProperties  `yaml:"properties"`
	Render          *rawRender     `yaml:"render"`
	Consumption     string         `yaml:"consumption"`
	ImpactParticles *rawParticles  `yaml:"impact-particles"`
	Ability         string         `yaml:"ability"`
	AbilityConfig   map[string]any `yaml:"ability-config"`
	ProjectileType  string         `yaml:"projectile-type"`
	Sounds          *rawSounds     `yaml:"sounds"`
}

type rawMatcher struct {
	Material    string   `yaml:"material"`
	DisplayName string   `yaml:"display-name"`
	Lore        []string `yaml:"lore"`
}

type rawProperties struct {
	Speed             *float64 `yaml:"speed"`
	AccuracyOffset    *float64 `yaml:"accuracy-offset"`
	Cooldown          *float64 `yaml:"cooldown"`
	GravityMultiplier *float64 `yaml:"gravity-multiplier"`
	Damage            *float64 `yaml:"damage"`
	KnockbackStrength *float64 `yaml:"knockback-strength"`
	KnockbackVertical *float64 `yaml:"knockback-vertical"`
	DropOnBreak       string   `yaml:"drop-on-break"`
}

type rawRender struct {
	Type            string    `yaml:"type"`
	RotationMode    string    `yaml:"rotation-mode"`
	Material        string    `yaml:"material"`
	ItemID          string    `yaml:"item-id"`
	YawOffset       *float64  `yaml:"yaw-offset"`
	PitchOffset     *float64  `yaml:"pitch-offset"`
	YawMultiplier   *float64  `yaml:"yaw-multiplier"`
	PitchMultiplier *float64  `yaml:"pitch-multiplier"`
	Blocks          []rawPart `yaml:"blocks"`
	Transformation  []float64 `yaml:"transformation"`
}

type rawPart struct {
	Block          string    `yaml:"block"`
	Transformation []float64 `yaml:"transformation"`
}

type rawParticles struct {
	Count    *int     `yaml:"count"`
	Spread   *float64 `yaml:"spread"`
	Velocity *float64 `yaml:"velocity"`
}

type rawSounds struct {
	Launch string   `yaml:"launch"`
	Impact string   `yaml:"impact"`
	Volume *float64 `yaml:"volume"`
	Pitch  *float64 `yaml:"pitch"`
}

type itemsFile struct {
	Items map[string]rawItem `yaml:"items"`
}

type rawItem struct {
	Material    string     `yaml:"material"`
	DisplayName string     `yaml:"display-name"`
	Lore        []string   `yaml:"lore"`
	Texture     string     `yaml:"texture"`
	Charged     bool       `yaml:"charged"`
	Recipe      *rawRecipe `yaml:"recipe"`
}

type rawRecipe struct {
	Shape       []string          `yaml:"shape"`
	Ingredients map[string]string `yaml:"ingredients"`
}

type settingsFile struct {
	HideDisplayProjectiles *bool          `yaml:"hide-display-projectiles"`
	SwapExemptEntities     []rawExemption `yaml:"swap-exempt-entities"`
}

type rawExemption struct {
	Type         string   `yaml:"type"`
	IfHasAnyTag  bool     `yaml:"if-has-any-tag"`
	IfHasTags    []string `yaml:"if-has-tags"`
	TagMatchMode string   `yaml:"tag-match-mode"`
}

func orFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func parseSettings(data []byte) (cfg.Settings, error) {
	s := cfg.DefaultSettings()
	var raw settingsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return s, fmt.Errorf("parse config.yml: %w", err)
	}
	if raw.HideDisplayProjectiles != nil {
		s.HideDisplayProjectiles = *raw.HideDisplayProjectiles
	}
	for _, ex := range raw.SwapExemptEntities {
		entityType := strings.ToLower(strings.TrimSpace(ex.Type))
		if entityType == "*" {
			entityType = ""
		}
		s.SwapExemptions = append(s.SwapExemptions, cfg.EntityExemption{
			EntityType:     entityType,
			IfHasAnyTag:    ex.IfHasAnyTag,
			RequiredTags:   slices.Clone(ex.IfHasTags),
			RequireAllTags: strings.EqualFold(ex.TagMatchMode, "ALL"),
		})
	}
	return s, nil
}

func parseItems(data []byte) (map[string]*CustomItem, error) {
	var raw itemsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse items.yml: %w", err)
	}

	items := make(map[string]*CustomItem, len(raw.Items))
	for id, ri := range raw.Items {
		material := normalizeMaterial(ri.Material)
		if material == "" {
			material = cfg.Particles.DefaultMaterial
		}
		item := &CustomItem{
			ID:          id,
			Material:    material,
			DisplayName: ri.DisplayName,
			Lore:        ri.Lore,
			Texture:     ri.Texture,
			Charged:     ri.Charged,
		}
		if ri.Recipe != nil {
			item.Recipe = parseRecipe(id, ri.Recipe)
		}
		items[id] = item
	}
	return items, nil
}

func parseRecipe(id string, rr *rawRecipe) *Recipe {
	r := &Recipe{
		Shape:       rr.Shape,
		Ingredients: make(map[rune]string, len(rr.Ingredients)),
	}
	for key, mat := range rr.Ingredients {
		runes := []rune(key)
		if len(runes) != 1 {
			log.Printf("[definitions] Item %q: ignoring recipe key %q (must be one character)", id, key)
			continue
		}
		r.Ingredients[runes[0]] = normalizeMaterial(mat)
	}
	return r
}

// parseYeetables decodes every entry on its own so one malformed definition
// does not take the rest of the file down with it.
func parseYeetables(data []byte, items map[string]*CustomItem) ([]*Definition, error) {
	var file yeetablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse yeetables.yml: %w", err)
	}

	defs := make([]*Definition, 0, len(file.Yeetables))
	for i := range file.Yeetables {
		node := &file.Yeetables[i]
		var raw rawYeetable
		if err := node.Decode(&raw); err != nil {
			log.Printf("[definitions] Skipping yeetable at line %d: %v", node.Line, err)
			continue
		}
		def, err := buildDefinition(&raw, items)
		if err != nil {
			log.Printf("[definitions] Skipping yeetable at line %d: %v", node.Line, err)
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

var (
	errMissingID   = errors.New("missing 'id'")
	errMissingItem = errors.New("missing 'item' section")
)

func buildDefinition(raw *rawYeetable, items map[string]*CustomItem) (*Definition, error) {
	if raw.ID == "" {
		return nil, errMissingID
	}
	if raw.Item == nil || normalizeMaterial(raw.Item.Material) == "" {
		return nil, fmt.Errorf("%s: %w", raw.ID, errMissingItem)
	}

	def := &Definition{
		ID:      raw.ID,
		Enabled: raw.Enabled == nil || *raw.Enabled,
		Matcher: Matcher{
			Material:    normalizeMaterial(raw.Item.Material),
			DisplayName: raw.Item.DisplayName,
			Lore:        raw.Item.Lore,
		},
		Properties:     buildProperties(&raw.Properties),
		Render:         buildRender(raw.ID, raw.Render, items),
		Particles:      buildParticles(raw.ImpactParticles),
		Ability:        strings.ToLower(strings.TrimSpace(raw.Ability)),
		Options:        Options(raw.AbilityConfig),
		ProjectileType: strings.ToLower(strings.TrimSpace(raw.ProjectileType)),
		Sounds:         buildSounds(raw.Sounds),
	}
	if def.Options == nil {
		def.Options = Options{}
	}

	if raw.Consumption != "" {
		c, ok := ParseConsumption(raw.Consumption)
		if !ok {
			log.Printf("[definitions] %s: unknown consumption %q, using %s", raw.ID, raw.Consumption, c)
		}
		def.Consumption = c
	}
	return def, nil
}

func buildProperties(rp *rawProperties) Properties {
	cooldownMs := orFloat(rp.Cooldown, float64(cfg.Projectile.DefaultCooldownMs))
	p := Properties{
		Speed:             orFloat(rp.Speed, cfg.Projectile.DefaultSpeed),
		AccuracyOffset:    orFloat(rp.AccuracyOffset, 0),
		Cooldown:          time.Duration(cooldownMs) * time.Millisecond,
		GravityMultiplier: orFloat(rp.GravityMultiplier, 1),
		Damage:            orFloat(rp.Damage, 0),
		KnockbackStrength: orFloat(rp.KnockbackStrength, 0),
		KnockbackVertical: orFloat(rp.KnockbackVertical, 0),
	}
	if drop := normalizeMaterial(rp.DropOnBreak); drop != "null" && drop != "none" {
		p.DropOnBreak = drop
	}
	return p
}

func buildParticles(rp *rawParticles) ParticleSpec {
	p := ParticleSpec{
		Count:  cfg.Particles.Count,
		Spread: cfg.Particles.Spread,
		Speed:  cfg.Particles.Speed,
	}
	if rp == nil {
		return p
	}
	if rp.Count != nil {
		p.Count = *rp.Count
	}
	p.Spread = orFloat(rp.Spread, p.Spread)
	p.Speed = orFloat(rp.Velocity, p.Speed)
	return p
}

func buildSounds(rs *rawSounds) *SoundSpec {
	if rs == nil || (rs.Launch == "" && rs.Impact == "") {
		return nil
	}
	return &SoundSpec{
		Launch: strings.ToLower(rs.Launch),
		Impact: strings.ToLower(rs.Impact),
		Volume: orFloat(rs.Volume, cfg.Audio.DefaultVolume),
		Pitch:  orFloat(rs.Pitch, cfg.Audio.DefaultPitch),
	}
}

func buildRender(id string, rr *rawRender, items map[string]*CustomItem) RenderSpec {
	if rr == nil {
		return SimpleRender{Material: cfg.Particles.DefaultMaterial}
	}

	rotation := PointForward
	if rr.RotationMode != "" {
		var ok bool
		if rotation, ok = ParseRotationMode(rr.RotationMode); !ok {
			log.Printf("[definitions] %s: unknown rotation-mode %q, using %s", id, rr.RotationMode, rotation)
		}
	}

	switch strings.ToLower(rr.Type) {
	case "block-display":
		render := BlockDisplayRender{
			YawOffset:       orFloat(rr.YawOffset, 0),
			PitchOffset:     orFloat(rr.PitchOffset, 0),
			YawMultiplier:   orFloat(rr.YawMultiplier, 1),
			PitchMultiplier: orFloat(rr.PitchMultiplier, 1),
			Rotation:        rotation,
		}
		for _, part := range rr.Blocks {
			material := normalizeMaterial(part.Block)
			if material == "" || len(part.Transformation) != 16 {
				log.Printf("[definitions] %s: skipping block part %q (need block and 16 transformation values)", id, part.Block)
				continue
			}
			render.Parts = append(render.Parts, ModelPart{
				Material:  material,
				Transform: matrix(part.Transformation),
			})
		}
		return render

	case "item-display":
		render := ItemDisplayRender{
			Transform: mgl64.Ident4(),
			Rotation:  rotation,
		}
		if len(rr.Transformation) == 16 {
			render.Transform = matrix(rr.Transformation)
		}
		switch {
		case rr.ItemID != "":
			if item, ok := items[rr.ItemID]; ok {
				render.Item = *item.Stack(1)
			} else {
				log.Printf("[definitions] %s: unknown item-id %q in item-display render", id, rr.ItemID)
				render.Item = components.ItemStack{Material: cfg.Particles.DefaultMaterial, Amount: 1}
			}
		default:
			material := normalizeMaterial(rr.Material)
			if material == "" {
				material = cfg.Particles.DefaultMaterial
			}
			render.Item = components.ItemStack{Material: material, Amount: 1}
		}
		return render
	}

	material := normalizeMaterial(rr.Material)
	if material == "" {
		material = cfg.Particles.DefaultMaterial
	}
	return SimpleRender{Material: material}
}

func matrix(values []float64) mgl64.Mat4 {
	var a [16]float64
	copy(a[:], values)
	return gamemath.MatrixFromRowMajor(a)
}
