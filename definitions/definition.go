// Package definitions holds the throwable definitions and custom items loaded
// from the data directory.
package definitions

import (
	"slices"
	"time"

	"github.com/automoto/yeetables/components"
	"github.com/go-gl/mathgl/mgl64"
)

// Definition describes one configured throwable. It is never modified after
// load.
type Definition struct {
	ID             string
	Enabled        bool
	Matcher        Matcher
	Properties     Properties
	Render         RenderSpec
	Consumption    Consumption
	Particles      ParticleSpec
	Ability        string  // Raw ability name, "" for none
	Options        Options // ability-config
	ProjectileType string  // "" = snowball
	Sounds         *SoundSpec
}

// Properties are the physical launch and impact values.
type Properties struct {
	Speed             float64
	AccuracyOffset    float64
	Cooldown          time.Duration
	GravityMultiplier float64
	Damage            float64
	KnockbackStrength float64
	KnockbackVertical float64
	DropOnBreak       string // "" = nothing dropped
}

// ParticleSpec configures the impact burst.
type ParticleSpec struct {
	Count  int
	Spread float64
	Speed  float64
}

// SoundSpec overrides the launch and impact sounds. Either key may be empty.
type SoundSpec struct {
	Launch string
	Impact string
	Volume float64
	Pitch  float64
}

// Consumption decides which hand loses an item on launch.
type Consumption int

const (
	ConsumeMainHand Consumption = iota
	ConsumeOffHand
	ConsumeNone
)

func (c Consumption) String() string {
	switch c {
	case ConsumeOffHand:
		return "OFFHAND"
	case ConsumeNone:
		return "NONE"
	}
	return "MAIN_HAND"
}

// Matcher selects the item stacks a definition applies to.
type Matcher struct {
	Material    string
	DisplayName string   // "" = any name
	Lore        []string // Lines the stack's lore must contain
}

// Matches reports whether the stack satisfies every configured condition.
func (m Matcher) Matches(s *components.ItemStack) bool {
	if s.Empty() || s.Material != m.Material {
		return false
	}
	if m.DisplayName == "" && len(m.Lore) == 0 {
		return true
	}
	if !s.HasMeta() {
		return false
	}
	if m.DisplayName != "" && s.DisplayName != m.DisplayName {
		return false
	}
	for _, line := range m.Lore {
		if !slices.Contains(s.Lore, line) {
			return false
		}
	}
	return true
}

// Specificity ranks matches: a name is worth more than lore, material alone
// is worth nothing.
func (m Matcher) Specificity() int {
	score := 0
	if m.DisplayName != "" {
		score += 10
	}
	if len(m.Lore) > 0 {
		score += 5
	}
	return score
}

// RotationMode is how a rendered projectile is oriented each tick.
type RotationMode int

const (
	PointForward RotationMode = iota
	SpinRandom
	RotationNone
)

func (r RotationMode) String() string {
	switch r {
	case SpinRandom:
		return "SPIN_RANDOM"
	case RotationNone:
		return "NONE"
	}
	return "POINT_FORWARD"
}

// RenderSpec is one of SimpleRender, BlockDisplayRender or ItemDisplayRender.
type RenderSpec interface {
	isRenderSpec()
}

// SimpleRender shows the carrier's own item.
type SimpleRender struct {
	Material string
}

// ModelPart is one block of a composite model with its static transform.
type ModelPart struct {
	Material  string
	Transform mgl64.Mat4
}

// BlockDisplayRender is a rigid composite of block parts.
type BlockDisplayRender struct {
	Parts           []ModelPart
	YawOffset       float64
	PitchOffset     float64
	YawMultiplier   float64
	PitchMultiplier float64
	Rotation        RotationMode
}

// ItemDisplayRender is a single rendered item.
type ItemDisplayRender struct {
	Item      components.ItemStack
	Transform mgl64.Mat4
	Rotation  RotationMode
}

func (SimpleRender) isRenderSpec()       {}
func (BlockDisplayRender) isRenderSpec() {}
func (ItemDisplayRender) isRenderSpec()  {}

// ParticleMaterial is the material impact particles are drawn with.
func (d *Definition) ParticleMaterial(fallback string) string {
	switch r := d.Render.(type) {
	case SimpleRender:
		if r.Material != "" {
			return r.Material
		}
	case BlockDisplayRender:
		if len(r.Parts) > 0 {
			return r.Parts[0].Material
		}
	}
	return fallback
}

// CustomItem is an item template from items.yml.
type CustomItem struct {
	ID          string
	Material    string
	DisplayName string
	Lore        []string
	Texture     string
	Charged     bool
	Recipe      *Recipe
}

// Recipe is a shaped crafting recipe. It is stored for clients; this server
// does not register recipes.
type Recipe struct {
	Shape       []string
	Ingredients map[rune]string
}

// Stack builds an item stack from the template.
func (c *CustomItem) Stack(amount int) *components.ItemStack {
	return &components.ItemStack{
		Material:    c.Material,
		Amount:      amount,
		DisplayName: c.DisplayName,
		Lore:        slices.Clone(c.Lore),
		Texture:     c.Texture,
		Charged:     c.Charged && c.Material == "crossbow",
	}
}
