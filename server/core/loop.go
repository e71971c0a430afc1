package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

type GameLoop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[server] Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("[server] Game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends the loop and waits up to a second for the tick in progress to
// finish. Calling it twice is safe.
func (g *GameLoop) Stop() {
	select {
	case <-g.stopChan:
		return
	default:
	}
	close(g.stopChan)
	select {
	case <-g.done:
	case <-time.After(time.Second):
	}
}

func (g *GameLoop) tick() {
	g.server.Step()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] Sync error: %v", err)
	}
}
