package core

import (
	"log"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/shared/netcomponents"
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
)

// netSink turns feedback requests into short-lived synced entities. The
// simulation's auto-destroy removes them after cfg.Server.FeedbackTTL ticks.
type netSink struct {
	world *sim.World
	track Tracker
}

func (s *netSink) PlaySound(at mgl64.Vec3, sound string, volume, pitch float64) {
	s.spawn(netcomponents.NetFeedbackData{
		Kind:   netconfig.FeedbackSound,
		X:      at.X(),
		Y:      at.Y(),
		Z:      at.Z(),
		Sound:  sound,
		Volume: volume,
		Pitch:  pitch,
	})
}

func (s *netSink) SpawnParticles(at mgl64.Vec3, material string, count int, spread, speed float64) {
	s.spawn(netcomponents.NetFeedbackData{
		Kind:     netconfig.FeedbackParticles,
		X:        at.X(),
		Y:        at.Y(),
		Z:        at.Z(),
		Material: material,
		Count:    count,
		Spread:   spread,
		Speed:    speed,
	})
}

func (s *netSink) spawn(data netcomponents.NetFeedbackData) {
	w := s.world.Donburi()
	e := w.Entry(w.Create(netcomponents.NetFeedback, components.AutoDestroy))
	netcomponents.NetFeedback.Set(e, &data)
	components.AutoDestroy.Set(e, &components.AutoDestroyData{TicksRemaining: cfg.Server.FeedbackTTL})
	if err := s.track(w, e); err != nil {
		log.Printf("[server] Failed to sync feedback: %v", err)
	}
}
