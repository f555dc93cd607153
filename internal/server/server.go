// Package server runs the authoritative match: UDP transport, session
// registry, fixed-rate tick loop and state broadcast.
package server

import (
	"errors"
	"log"
	"net"
	"time"

	"github.com/remeh/sizedwaitgroup"

	"gridfire/internal/config"
	"gridfire/internal/game"
	"gridfire/internal/protocol"
)

const (
	maxParallelSends  = 8
	inboxSize         = 1024
	spectateEveryTick = 10 // Spectator feed runs at a tenth of the tick rate
)

// transport is the outbound half of the datagram socket. Fire and forget:
// send failures are logged and never affect simulation state.
type transport interface {
	WriteToUDP(b []byte, addr *net.UDPAddr) (int, error)
}

type packet struct {
	addr *net.UDPAddr
	data []byte
}

// Server owns all match and session state. A single goroutine (the tick loop)
// mutates it; the reader goroutine only feeds the inbox channel.
type Server struct {
	cfg      config.Config
	conn     transport
	state    *game.MatchState
	registry *Registry
	inputs   map[uint64]game.Input
	shots    []uint64 // Shooter ids queued during the drain, resolved post-movement
	inbox    chan packet
	hub      *SpectatorHub
	ticks    uint64
}

// New creates a server over the given world. The socket is bound in Run.
func New(cfg config.Config, world *game.World) *Server {
	state := game.NewMatchState(world)
	state.AllowDeadLook = cfg.AllowDeadLook
	return &Server{
		cfg:      cfg,
		state:    state,
		registry: NewRegistry(cfg.Timeout),
		inputs:   make(map[uint64]game.Input),
		inbox:    make(chan packet, inboxSize),
	}
}

// Run binds the UDP socket and drives the match loop until a player wins.
// Only the bind can fail; everything after is best-effort.
func (s *Server) Run() error {
	addr, err := net.ResolveUDPAddr("udp", s.cfg.Addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	s.conn = conn

	go s.readLoop(conn)

	if s.cfg.SpectateAddr != "" {
		s.hub = NewSpectatorHub()
		go s.hub.Serve(s.cfg.SpectateAddr)
	}

	log.Printf("Server listening on %s (score to win: %d)", conn.LocalAddr(), s.cfg.ScoreToWin)
	s.loop()
	return nil
}

// readLoop moves datagrams from the socket into the inbox. It is the only
// goroutine besides the tick loop, and it never touches match state.
func (s *Server) readLoop(conn *net.UDPConn) {
	buf := make([]byte, 2048)
	for {
		n, src, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// Connection-reset style errors on a connectionless socket carry
			// no meaning; dead peers are reaped by the liveness sweep.
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		select {
		case s.inbox <- packet{addr: src, data: data}:
		default:
			// Inbox full. The transport is best-effort, so drop.
		}
	}
}

// loop is the fixed-rate scheduler: drain, sweep, tick, sleep the remainder.
// An overrunning tick continues immediately; ticks are never skipped.
func (s *Server) loop() {
	tickDur := time.Second / game.TickRate
	lastTick := time.Now()

	for {
		s.drainInbox(time.Now())
		s.sweepSessions(time.Now())

		now := time.Now()
		if now.Sub(lastTick) >= tickDur {
			lastTick = now
			s.tick(tickDur)
			if s.state.Winner != "" {
				log.Printf("Game over! Winner is %s", s.state.Winner)
				return
			}
		}

		if rest := tickDur - time.Since(lastTick); rest > 0 {
			time.Sleep(rest)
		}
	}
}

// drainInbox handles every currently queued datagram without blocking.
func (s *Server) drainInbox(now time.Time) {
	for {
		select {
		case pkt := <-s.inbox:
			s.handlePacket(pkt, now)
		default:
			return
		}
	}
}

// handlePacket decodes and dispatches one datagram. Garbage is dropped with a
// log line; messages from unknown addresses never create state.
func (s *Server) handlePacket(pkt packet, now time.Time) {
	env, err := protocol.DecodeEnvelope(pkt.data)
	if err != nil {
		log.Printf("Dropping undecodable datagram from %s: %v", pkt.addr, err)
		return
	}

	sess := s.registry.Lookup(pkt.addr)
	if sess != nil {
		sess.LastSeen = now
	}

	switch env.T {
	case protocol.KindConnect:
		s.handleConnect(pkt.addr, env, now)
	case protocol.KindInput:
		if sess == nil {
			return
		}
		in, err := protocol.DecodePayload[game.Input](env)
		if err != nil {
			log.Printf("Dropping bad input from %s: %v", pkt.addr, err)
			return
		}
		s.inputs[sess.ID] = in
	case protocol.KindShot:
		if sess == nil {
			return
		}
		s.shots = append(s.shots, sess.ID)
	case protocol.KindPing:
		// Liveness only, refreshed above
	default:
		log.Printf("Unknown message kind %d from %s", env.T, pkt.addr)
	}
}

// handleConnect admits a new address or replies with the rejection reason.
// Repeated Connects from an admitted address are ignored.
func (s *Server) handleConnect(addr *net.UDPAddr, env protocol.Envelope, now time.Time) {
	if s.registry.Lookup(addr) != nil {
		return
	}
	req, err := protocol.DecodePayload[protocol.Connect](env)
	if err != nil {
		log.Printf("Dropping bad connect from %s: %v", addr, err)
		return
	}

	sess, err := s.registry.Admit(addr, req.Name, now)
	if err != nil {
		log.Printf("Rejected connection from %s: %v", addr, err)
		s.sendTo(addr, protocol.KindUsernameRejected, protocol.UsernameRejected{Reason: err.Error()})
		return
	}

	s.state.AddPlayer(sess.ID, sess.Name)
	s.inputs[sess.ID] = game.Input{}

	s.sendTo(addr, protocol.KindWelcome, protocol.Welcome{ID: sess.ID})
	s.sendTo(addr, protocol.KindInitialState, protocol.InitialState{
		World:       s.state.World,
		Players:     s.state.Players,
		Decals:      s.state.Decals,
		Leaderboard: s.state.Leaderboard,
	})
	s.broadcast(protocol.KindLeaderboard, protocol.LeaderboardUpdate{Scores: s.state.Leaderboard})

	log.Printf("Player %d (%s) joined from %s", sess.ID, sess.Name, addr)
}

// sweepSessions evicts timed-out sessions and announces each departure once.
func (s *Server) sweepSessions(now time.Time) {
	for _, sess := range s.registry.SweepExpired(now) {
		log.Printf("Player %d (%s) timed out", sess.ID, sess.Name)
		s.state.RemovePlayer(sess.ID)
		delete(s.inputs, sess.ID)
		s.broadcast(protocol.KindPlayerLeft, protocol.PlayerLeft{ID: sess.ID})
	}
}

// tick advances the whole match by one fixed step: inputs and lifecycle state
// per entity, then queued shots, then decal sweep and gravity, then broadcast.
func (s *Server) tick(dt time.Duration) {
	decalsChanged := false
	s.registry.Each(func(sess *Session) {
		in := s.inputs[sess.ID]
		if s.state.Update(sess.ID, &in, dt) {
			decalsChanged = true
		}
	})

	scoreChanged := s.resolveShots()

	if s.state.SweepDecals(dt) {
		decalsChanged = true
	}
	s.state.ApplyGravity()

	s.broadcast(protocol.KindGameUpdate, s.buildUpdate())
	if decalsChanged {
		s.broadcast(protocol.KindDecalUpdate, protocol.DecalUpdate{Decals: s.state.Decals})
	}
	if scoreChanged {
		s.broadcast(protocol.KindLeaderboard, protocol.LeaderboardUpdate{Scores: s.state.Leaderboard})
	}
	if s.state.Winner != "" {
		s.broadcast(protocol.KindWinner, protocol.Winner{Name: s.state.Winner})
	}

	s.ticks++
	if s.hub != nil && s.ticks%spectateEveryTick == 0 {
		s.hub.Publish(s.buildSpectatorSnapshot())
	}
}

// resolveShots runs every queued shot after the movement phase, so all
// shooters read the same post-movement positions. Reports score changes.
func (s *Server) resolveShots() bool {
	scoreChanged := false
	for _, shooterID := range s.shots {
		targetID, ok := s.state.MeasureShot(shooterID)
		if !ok {
			continue
		}
		shooter := s.state.Players[shooterID]
		target := s.state.Players[targetID]
		if shooter == nil || target == nil {
			continue
		}

		s.broadcast(protocol.KindShotHit, protocol.ShotHit{
			ShooterID:   shooterID,
			ShooterName: shooter.Name,
			TargetID:    targetID,
			TargetName:  target.Name,
		})

		if s.state.ApplyHit(shooterID, targetID) {
			scoreChanged = true
			log.Printf("%s killed %s (%d points)", shooter.Name, target.Name, s.state.Score(shooter.Name))
			if s.state.Score(shooter.Name) >= s.cfg.ScoreToWin {
				s.state.Winner = shooter.Name
			}
		}
	}
	s.shots = s.shots[:0]
	return scoreChanged
}

// buildUpdate assembles the per-tick entity delta for all players.
func (s *Server) buildUpdate() protocol.GameUpdate {
	updates := make(map[uint64]protocol.PlayerUpdate, len(s.state.Players))
	for id, p := range s.state.Players {
		updates[id] = protocol.PlayerUpdate{
			X:        p.X,
			Y:        p.Y,
			Z:        p.Z,
			Angle:    p.Angle,
			Pitch:    p.Pitch,
			Texture:  p.Texture,
			Anim:     p.Anim,
			Shooting: p.Shooting,
			Health:   p.Health,
			Score:    s.state.Score(p.Name),
		}
	}
	return protocol.GameUpdate{Players: updates}
}

// broadcast encodes a message once and fans it out to every admitted address.
// Per-recipient failures are logged and skipped; eviction is time-based only.
func (s *Server) broadcast(k protocol.Kind, payload any) {
	if s.conn == nil || s.registry.Len() == 0 {
		return
	}
	data, err := protocol.Encode(k, payload)
	if err != nil {
		log.Printf("Encoding broadcast kind %d failed: %v", k, err)
		return
	}

	swg := sizedwaitgroup.New(maxParallelSends)
	s.registry.Each(func(sess *Session) {
		swg.Add()
		go func(addr *net.UDPAddr) {
			defer swg.Done()
			if _, err := s.conn.WriteToUDP(data, addr); err != nil {
				log.Printf("Send to %s failed: %v", addr, err)
			}
		}(sess.Addr)
	})
	swg.Wait()
}

// sendTo sends one message to a single address.
func (s *Server) sendTo(addr *net.UDPAddr, k protocol.Kind, payload any) {
	if s.conn == nil {
		return
	}
	data, err := protocol.Encode(k, payload)
	if err != nil {
		log.Printf("Encoding kind %d failed: %v", k, err)
		return
	}
	if _, err := s.conn.WriteToUDP(data, addr); err != nil {
		log.Printf("Send to %s failed: %v", addr, err)
	}
}
