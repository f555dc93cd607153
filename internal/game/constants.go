package game

import (
	"math"
	"time"
)

// Simulation constants
const (
	TickRate     = 100 // Server updates per second
	MoveSpeed    = 0.035
	RotSpeed     = 0.03
	SprintFactor = 1.5
	JumpVelocity = 0.028
	Gravity      = 0.0012 // Vertical deceleration per tick
	PlayerRadius = 0.2
	PitchLimit   = math.Pi / 2.5
	EyeHeight    = 0.1 // Camera height above the player's z
)

// Combat constants
const (
	MaxHealth          = 100
	ShotDamage         = 50
	ShotCooldown       = 35 * time.Millisecond
	ShotMaxRangeSq     = 200.0
	SpriteWidth        = 0.4
	SpriteHeight       = 0.7
	CorpseHeightFactor = 0.4 // Corpses lie low and are harder to hit
)

// Lifecycle timers
const (
	RespawnDelay = 4 * time.Second
	DyingTime    = 1 * time.Second
	DecalTTL     = 30 * time.Second
	MaxDecals    = 100
)

// Tile codes
const (
	TileOpen = 0
	TileWall = 1 // Any code > 0 is a wall variant
)

// Random map generation
const (
	DefaultRandomMapSide = 16
	MinRandomMapSide     = 4
	MaxRandomMapSide     = 35
	pathDeviationChance  = 30 // Percent chance to abandon the previous carve direction
	holeChance           = 15 // Percent chance to carve into an already-open neighborhood
)
