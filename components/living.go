package components

import "github.com/yohamta/donburi"

// PotionEffect is one active status effect.
type PotionEffect struct {
	Amplifier int
	Ticks     int
}

type LivingData struct {
	Kind      string // Entity type name ("player", "zombie", ...)
	Health    float64
	MaxHealth float64
	FireTicks int
	Effects   map[string]PotionEffect
	Tags      map[string]struct{} // Scoreboard tags
	Dead      bool
	LastHurt  donburi.Entity
}

var Living = donburi.NewComponentType[LivingData]()
