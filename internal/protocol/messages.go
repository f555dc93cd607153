// Package protocol defines the datagram message taxonomy and the msgpack
// envelope codec shared by server and clients. One message per datagram.
package protocol

import "gridfire/internal/game"

// Kind tags every message on the wire. The set is closed: dispatch sites
// switch exhaustively and drop anything else.
type Kind uint8

const (
	// Client to server
	KindConnect Kind = iota + 1
	KindInput
	KindShot
	KindPing

	// Server to client
	KindWelcome
	KindInitialState
	KindGameUpdate
	KindDecalUpdate
	KindPlayerLeft
	KindShotHit
	KindLeaderboard
	KindUsernameRejected
	KindWinner
)

// Connect asks for admission under a display name.
type Connect struct {
	Name string `msgpack:"name"`
}

// Welcome carries the id the server assigned to the new player.
type Welcome struct {
	ID uint64 `msgpack:"id"`
}

// InitialState is the full world snapshot a client receives on admission.
type InitialState struct {
	World       *game.World             `msgpack:"world"`
	Players     map[uint64]*game.Player `msgpack:"players"`
	Decals      map[uint32]game.Decal   `msgpack:"decals"`
	Leaderboard map[string]int          `msgpack:"leaderboard"`
}

// PlayerUpdate is the per-entity delta broadcast every tick.
type PlayerUpdate struct {
	X        float32             `msgpack:"x"`
	Y        float32             `msgpack:"y"`
	Z        float32             `msgpack:"z"`
	Angle    float32             `msgpack:"angle"`
	Pitch    float32             `msgpack:"pitch"`
	Texture  string              `msgpack:"texture"`
	Anim     game.AnimationState `msgpack:"anim"`
	Shooting bool                `msgpack:"shooting"`
	Health   int                 `msgpack:"health"`
	Score    int                 `msgpack:"score"`
}

// GameUpdate maps entity ids to their deltas for one tick.
type GameUpdate struct {
	Players map[uint64]PlayerUpdate `msgpack:"players"`
}

// DecalUpdate replaces the client's decal set. Only sent on change.
type DecalUpdate struct {
	Decals map[uint32]game.Decal `msgpack:"decals"`
}

// PlayerLeft announces an eviction or disconnect.
type PlayerLeft struct {
	ID uint64 `msgpack:"id"`
}

// ShotHit reports a resolved hit to everyone.
type ShotHit struct {
	ShooterID   uint64 `msgpack:"shooterId"`
	ShooterName string `msgpack:"shooterName"`
	TargetID    uint64 `msgpack:"targetId"`
	TargetName  string `msgpack:"targetName"`
}

// LeaderboardUpdate carries the full name-to-score table.
type LeaderboardUpdate struct {
	Scores map[string]int `msgpack:"scores"`
}

// UsernameRejected explains why admission was refused.
type UsernameRejected struct {
	Reason string `msgpack:"reason"`
}

// Winner ends the match, naming the player who reached the score threshold.
type Winner struct {
	Name string `msgpack:"name"`
}
