package game

import (
	"fmt"
	"time"
)

// MatchState owns everything a match mutates: the world grid, the entity
// collection, the leaderboard and the live decals. A single goroutine owns it
// for the lifetime of the match; every tick phase takes it by pointer.
type MatchState struct {
	World       *World
	Players     map[uint64]*Player
	Leaderboard map[string]int
	Decals      map[uint32]Decal
	Winner      string

	// AllowDeadLook lets dead players keep turning and pitching while they
	// wait to respawn. Off by default: death freezes all input effects.
	AllowDeadLook bool

	decalTTL    map[uint32]time.Duration
	nextDecalID uint32
}

// NewMatchState creates an empty match over the given world.
func NewMatchState(w *World) *MatchState {
	return &MatchState{
		World:       w,
		Players:     make(map[uint64]*Player),
		Leaderboard: make(map[string]int),
		Decals:      make(map[uint32]Decal),
		decalTTL:    make(map[uint32]time.Duration),
	}
}

// AddPlayer creates the entity and leaderboard entry for a newly admitted
// player and returns the entity.
func (m *MatchState) AddPlayer(id uint64, name string) *Player {
	p := NewPlayer(name, fmt.Sprintf("blob%d", id%4+1), m.World)
	m.Players[id] = p
	m.Leaderboard[name] = 0
	return p
}

// RemovePlayer drops the entity and its leaderboard entry. Score does not
// survive the connection.
func (m *MatchState) RemovePlayer(id uint64) {
	if p, ok := m.Players[id]; ok {
		delete(m.Leaderboard, p.Name)
		delete(m.Players, id)
	}
}

// Update applies one player's latest input and advances its lifecycle state
// machine by dt. Unknown ids are a no-op. Reports whether a decal was spawned
// (a player finished dying this tick).
func (m *MatchState) Update(id uint64, in *Input, dt time.Duration) bool {
	p, ok := m.Players[id]
	if !ok {
		return false
	}

	p.TakeInput(in, m.World, m.AllowDeadLook)

	switch {
	case p.Dying:
		p.Anim = AnimDying
		p.DeathTimer = saturatingSub(p.DeathTimer, dt)
		if p.DeathTimer < RespawnDelay {
			// Dying animation over: the body hits the floor
			p.Dying = false
			m.AddPuddle(p.X, p.Y)
			return true
		}
	case p.Health == 0:
		p.Anim = AnimDead
		p.DeathTimer = saturatingSub(p.DeathTimer, dt)
		if p.DeathTimer == 0 {
			x, y := m.World.RandomSpawnPoint()
			p.Respawn(x, y)
		}
	case p.Shooting:
		p.Anim = AnimShooting
		p.ShootTimer = saturatingSub(p.ShootTimer, dt)
		if p.ShootTimer == 0 {
			p.Shooting = false
		}
	case in.Moving():
		p.Anim = AnimWalking
	default:
		p.Anim = AnimIdle
	}

	return false
}

// ApplyGravity integrates vertical velocity for every entity. Runs once per
// tick regardless of whether the entity had input this tick.
func (m *MatchState) ApplyGravity() {
	for _, p := range m.Players {
		p.Z += p.VelZ
		if p.Z > 0 {
			p.VelZ -= Gravity
		} else {
			p.Z = 0
			p.VelZ = 0
		}
	}
}

// ApplyHit damages the target of a resolved shot. Reports whether the hit was
// lethal; a lethal hit starts the dying countdown and credits the shooter on
// the leaderboard.
func (m *MatchState) ApplyHit(shooterID, targetID uint64) bool {
	target, ok := m.Players[targetID]
	if !ok || target.Health == 0 {
		return false
	}

	target.Health -= ShotDamage
	if target.Health > 0 {
		return false
	}

	target.Health = 0
	target.Dying = true
	target.DeathTimer = DyingTime + RespawnDelay

	if shooter, ok := m.Players[shooterID]; ok {
		m.Leaderboard[shooter.Name]++
	}
	return true
}

// Score returns the current leaderboard score for a name.
func (m *MatchState) Score(name string) int {
	return m.Leaderboard[name]
}

func saturatingSub(d, dt time.Duration) time.Duration {
	if d <= dt {
		return 0
	}
	return d - dt
}
