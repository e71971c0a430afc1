package netcomponents

import (
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetEntityData struct {
	Kind      netconfig.EntityKind
	Name      string // Player name or mob type
	Health    float64
	MaxHealth float64
	Dead      bool
	OnFire    bool
	Item      string // Visible item material of projectiles and drops
}

var NetEntity = donburi.NewComponentType[NetEntityData]()
