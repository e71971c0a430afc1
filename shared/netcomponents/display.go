package netcomponents

import (
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetDisplayData is the shape of a block or item display. Matrix is the
// display's transformation in column-major order.
type NetDisplayData struct {
	Kind      netconfig.EntityKind
	Material  string
	Matrix    [16]float64
	ViewRange float64
}

var NetDisplay = donburi.NewComponentType[NetDisplayData]()
