package core

import (
	"log"
	"sync"

	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/definitions"
	"github.com/automoto/yeetables/projectile"
	"github.com/automoto/yeetables/shared/messages"
	"github.com/automoto/yeetables/sim"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Config is the identity and limits of one server.
type Config struct {
	Name       string
	Version    string // Required client version (empty = accept any)
	TickRate   int
	MaxPlayers int
	AdminToken string // Empty disables admin commands
}

// session is one joined client. Only the logic thread touches it.
type session struct {
	peer    Peer
	player  donburi.Entity
	lastSeq uint32
	using   bool
}

// Server manages the game state and client connections
type Server struct {
	cfg      Config
	world    *sim.World
	defs     *definitions.Registry
	dispatch *projectile.Dispatcher
	sink     *netSink
	mirror   *mirror
	queue    *commandQueue
	loop     *GameLoop

	transport *transports.WsServerTransport

	sessions map[string]*session
	joined   int

	// Read by the registration/status side without touching the world.
	mu          sync.RWMutex
	playerCount int
}

// Option configures a Server.
type Option func(*Server)

// WithTracker replaces srvsync as the way new entities are marked for sync.
func WithTracker(t Tracker) Option {
	return func(s *Server) {
		s.mirror.track = t
		s.sink.track = t
	}
}

// NewServer creates a server around a loaded world and definition registry.
func NewServer(world *sim.World, defs *definitions.Registry, c Config, opts ...Option) *Server {
	if c.TickRate <= 0 {
		c.TickRate = cfg.Server.TickRate
	}
	if c.MaxPlayers <= 0 {
		c.MaxPlayers = cfg.Server.MaxPlayers
	}

	s := &Server{
		cfg:      c,
		world:    world,
		defs:     defs,
		sink:     &netSink{world: world, track: srvsyncTracker},
		mirror:   &mirror{world: world, track: srvsyncTracker},
		queue:    newCommandQueue(cfg.Server.CommandBuffer, cfg.Server.ClientCommands),
		sessions: map[string]*session{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dispatch = projectile.New(world, defs, projectile.WithFeedback(s.sink))
	s.loop = NewGameLoop(s, c.TickRate)

	sim.Explosion.Subscribe(world.Donburi(), s.onExplosion)
	sim.EntityDied.Subscribe(world.Donburi(), s.onDeath)
	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	srvsync.UseEsync(s.world.Donburi())
	s.setupRouterCallbacks()

	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the game loop and tears down every renderer and grapple.
func (s *Server) Stop() {
	s.loop.Stop()
	s.dispatch.Close()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] Client %s disconnected with error: %v", client.Id(), err)
		}
		s.queue.push(command{kind: cmdLeave, peer: client})
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.queue.push(command{kind: cmdJoin, peer: client, join: req})
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.queue.push(command{kind: cmdInput, peer: client, input: input})
	})

	router.On(func(client *router.NetworkClient, admin messages.AdminCommand) {
		s.queue.push(command{kind: cmdAdmin, peer: client, admin: admin})
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] Client error: %v", err)
	})
}

// Step runs one server tick: queued commands, one simulation tick, then the
// net component mirror.
func (s *Server) Step() {
	s.ProcessCommands()
	s.world.Tick()
	s.mirror.update()
}

// ProcessCommands applies everything clients sent since the last tick.
func (s *Server) ProcessCommands() {
	for _, cmd := range s.queue.drain() {
		switch cmd.kind {
		case cmdJoin:
			s.handleJoin(cmd.peer, cmd.join)
		case cmdInput:
			s.handleInput(cmd.peer, cmd.input)
		case cmdAdmin:
			s.handleAdmin(cmd.peer, cmd.admin)
		case cmdLeave:
			s.handleLeave(cmd.peer)
		}
	}
}

// World returns the simulation
func (s *Server) World() *sim.World {
	return s.world
}

// Dispatcher returns the throwable dispatcher
func (s *Server) Dispatcher() *projectile.Dispatcher {
	return s.dispatch
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerCount
}

func (s *Server) setPlayerCount() {
	s.mu.Lock()
	s.playerCount = len(s.sessions)
	s.mu.Unlock()
}

func (s *Server) broadcast(msg any) {
	for _, sess := range s.sessions {
		send(sess.peer, msg)
	}
}

func send(p Peer, msg any) {
	if err := p.SendMessage(msg); err != nil {
		log.Printf("[server] Send to %s failed: %v", p.Id(), err)
	}
}

// networkID returns e's sync id, or 0 for entities that are not synced.
func networkID(e *donburi.Entry) esync.NetworkId {
	if e == nil || !e.Valid() || !e.HasComponent(esync.NetworkIdComponent) {
		return 0
	}
	return esync.NetworkIdComponent.GetValue(e)
}
