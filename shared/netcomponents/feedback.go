package netcomponents

import (
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetFeedbackData is a one-shot sound or particle burst. The entity carrying
// it lives for a few ticks so every client sees it once.
type NetFeedbackData struct {
	Kind    netconfig.FeedbackKind
	X, Y, Z float64

	Sound  string
	Volume float64
	Pitch  float64

	Material string
	Count    int
	Spread   float64
	Speed    float64
}

var NetFeedback = donburi.NewComponentType[NetFeedbackData]()
