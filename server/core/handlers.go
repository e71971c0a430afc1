package core

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/automoto/yeetables/components"
	cfg "github.com/automoto/yeetables/config"
	"github.com/automoto/yeetables/projectile"
	"github.com/automoto/yeetables/shared/messages"
	"github.com/automoto/yeetables/shared/netconfig"
	"github.com/automoto/yeetables/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
)

func (s *Server) handleJoin(p Peer, req messages.JoinRequest) {
	if _, ok := s.sessions[p.Id()]; ok {
		return
	}
	if s.cfg.Version != "" && req.Version != "" && req.Version != s.cfg.Version {
		send(p, messages.JoinRejected{Reason: fmt.Sprintf("version mismatch: server wants %s", s.cfg.Version)})
		return
	}
	if len(s.sessions) >= s.cfg.MaxPlayers {
		send(p, messages.JoinRejected{Reason: "server full"})
		return
	}

	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		name = fmt.Sprintf("player-%d", s.joined+1)
	}
	id := uuid.New()
	player := s.world.SpawnPlayer(id, name, s.world.SpawnPoint(s.joined))
	s.joined++
	if cfg.Server.StarterAmount > 0 {
		components.Player.Get(player).Give(&components.ItemStack{
			Material: cfg.Server.StarterMaterial,
			Amount:   cfg.Server.StarterAmount,
		})
	}
	s.mirror.attach(player)

	s.sessions[p.Id()] = &session{peer: p, player: player.Entity()}
	s.setPlayerCount()

	send(p, messages.JoinAccepted{
		NetworkID:  networkID(player),
		PlayerID:   id.String(),
		ServerName: s.cfg.Name,
		TickRate:   s.cfg.TickRate,
	})
	log.Printf("[server] %s joined as %q (%s)", p.Id(), name, id)
}

func (s *Server) handleInput(p Peer, in messages.PlayerInput) {
	sess, ok := s.sessions[p.Id()]
	if !ok {
		return
	}
	player := s.world.Entry(sess.player)
	if !s.world.IsAlive(player) {
		return
	}
	if in.Sequence != 0 && in.Sequence <= sess.lastSeq {
		return
	}
	sess.lastSeq = in.Sequence
	pd := components.Player.Get(player)

	s.world.SetLook(player, in.Yaw, mgl64.Clamp(in.Pitch, -90, 90))
	if in.HeldSlot >= 0 && in.HeldSlot < components.HotbarSize {
		pd.HeldSlot = in.HeldSlot
	}

	move := mgl64.Vec2{in.MoveX, in.MoveZ}
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	} else if math.IsNaN(l) {
		move = mgl64.Vec2{}
	}
	vel, _ := s.world.Velocity(player)
	vel[0], vel[2] = move.X()*cfg.Server.WalkSpeed, move.Y()*cfg.Server.WalkSpeed
	if in.Jump && components.Body.Get(player).OnGround {
		vel[1] = cfg.Server.JumpVelocity
	}
	s.world.SetVelocity(player, vel)

	// Throw on press, not while held.
	if in.Use && !sess.using {
		s.throw(sess, player)
	}
	sess.using = in.Use
}

func (s *Server) throw(sess *session, player *donburi.Entry) {
	_, err := s.dispatch.Interact(player)
	switch {
	case err == nil, errors.Is(err, projectile.ErrNoMatch):
	case errors.Is(err, projectile.ErrOnCooldown):
		pd := components.Player.Get(player)
		reject := messages.ThrowRejected{Reason: "cooldown"}
		if def := s.defs.FindMatch(pd.MainHand()); def != nil {
			reject.RemainingMs = s.dispatch.Cooldowns().Remaining(pd.ID, def.ID, def.Properties.Cooldown).Milliseconds()
		}
		send(sess.peer, reject)
	default:
		send(sess.peer, messages.ThrowRejected{Reason: err.Error()})
	}
}

func (s *Server) handleAdmin(p Peer, cmd messages.AdminCommand) {
	if s.cfg.AdminToken == "" || cmd.Token != s.cfg.AdminToken {
		send(p, messages.AdminReply{Error: "not allowed"})
		return
	}
	fields := strings.Fields(cmd.Line)
	if len(fields) == 0 {
		send(p, messages.AdminReply{Error: "empty command"})
		return
	}

	var reply messages.AdminReply
	switch strings.ToLower(fields[0]) {
	case netconfig.AdminReload:
		reply = s.adminReload()
	case netconfig.AdminList:
		reply = s.adminList()
	case netconfig.AdminGive:
		reply = s.adminGive(p, fields[1:])
	default:
		reply.Error = fmt.Sprintf("unknown command %q", fields[0])
	}
	send(p, reply)
}

func (s *Server) adminReload() messages.AdminReply {
	err := s.defs.Reload()
	reply := messages.AdminReply{
		Lines: []string{fmt.Sprintf("Reloaded %d yeetables, %d custom items", len(s.defs.All()), len(s.defs.CustomItemIDs()))},
	}
	if err != nil {
		log.Printf("[definitions] Reload finished with errors: %v", err)
		reply.Error = err.Error()
	}
	return reply
}

func (s *Server) adminList() messages.AdminReply {
	var reply messages.AdminReply
	for _, def := range s.defs.Enabled() {
		line := def.ID + " (" + def.Matcher.Material
		if def.Ability != "" {
			line += ", " + def.Ability
		}
		reply.Lines = append(reply.Lines, line+")")
	}
	if len(reply.Lines) == 0 {
		reply.Lines = []string{"No yeetables enabled"}
	}
	return reply
}

// adminGive handles "give <item> [amount]" for the sender's own player.
func (s *Server) adminGive(p Peer, args []string) messages.AdminReply {
	if len(args) == 0 {
		return messages.AdminReply{Error: "usage: give <item> [amount]"}
	}
	sess, ok := s.sessions[p.Id()]
	if !ok || !s.world.Exists(sess.player) {
		return messages.AdminReply{Error: "join first"}
	}
	item, err := s.defs.CustomItem(args[0])
	if err != nil {
		return messages.AdminReply{Error: err.Error()}
	}
	amount := 1
	if len(args) > 1 {
		if amount, err = strconv.Atoi(args[1]); err != nil || amount < 1 {
			return messages.AdminReply{Error: fmt.Sprintf("bad amount %q", args[1])}
		}
	}
	if !components.Player.Get(s.world.Entry(sess.player)).Give(item.Stack(amount)) {
		return messages.AdminReply{Error: "hotbar full"}
	}
	return messages.AdminReply{Lines: []string{fmt.Sprintf("Gave %d %s", amount, item.ID)}}
}

func (s *Server) handleLeave(p Peer) {
	sess, ok := s.sessions[p.Id()]
	if !ok {
		return
	}
	delete(s.sessions, p.Id())
	s.setPlayerCount()

	if player := s.world.Entry(sess.player); player != nil {
		id := components.Player.Get(player).ID
		s.dispatch.Grapples().Abort(id)
		s.dispatch.Cooldowns().Forget(id)
		s.world.Remove(player)
	}
	log.Printf("[server] %s left", p.Id())
}

func (s *Server) onExplosion(_ donburi.World, ev sim.Exploded) {
	s.sink.PlaySound(ev.Center, cfg.SoundExplode, cfg.Audio.DefaultVolume, cfg.Audio.DefaultPitch)
}

// onDeath tells everyone and brings dead players back after a delay.
func (s *Server) onDeath(_ donburi.World, ev sim.Died) {
	s.broadcast(messages.DeathEvent{
		VictimID: uint(networkID(s.world.Entry(ev.Entity))),
		KillerID: uint(networkID(s.world.Entry(ev.Killer))),
		Kind:     ev.Kind,
	})
	victim := s.world.Entry(ev.Entity)
	if victim == nil || !victim.HasComponent(components.Player) {
		return
	}
	spawn := s.joined
	s.world.Scheduler().RunLater(cfg.Server.RespawnTicks, func() {
		if player := s.world.Entry(ev.Entity); player != nil {
			s.world.Respawn(player, s.world.SpawnPoint(spawn))
		}
	})
}
