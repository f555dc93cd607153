package game

import (
	"math"
	"time"
)

// AnimationState is the replicated presentation state of a player. It is
// derived from authoritative state each tick and carries no gameplay meaning.
type AnimationState uint8

const (
	AnimIdle AnimationState = iota
	AnimWalking
	AnimShooting
	AnimDying
	AnimDead
)

// Player is one connection's authoritative entity state. Position is in
// tile-fractional units, z is jump height above the floor, angle is the facing
// direction in radians and pitch the clamped vertical look offset.
type Player struct {
	Name    string  `msgpack:"name" json:"name"`
	X       float32 `msgpack:"x" json:"x"`
	Y       float32 `msgpack:"y" json:"y"`
	Z       float32 `msgpack:"z" json:"z"`
	Angle   float32 `msgpack:"angle" json:"angle"`
	Pitch   float32 `msgpack:"pitch" json:"pitch"`
	VelZ    float32 `msgpack:"velZ" json:"velZ"`
	Health  int     `msgpack:"health" json:"health"`
	Texture string  `msgpack:"texture" json:"texture"`

	Anim     AnimationState `msgpack:"anim" json:"anim"`
	Dying    bool           `msgpack:"dying" json:"dying"`
	Shooting bool           `msgpack:"shooting" json:"shooting"`

	DeathTimer time.Duration `msgpack:"-" json:"-"`
	ShootTimer time.Duration `msgpack:"-" json:"-"`
}

// NewPlayer creates a live player at a random open tile of the world.
func NewPlayer(name, texture string, w *World) *Player {
	x, y := w.RandomSpawnPoint()
	return &Player{
		Name:    name,
		X:       x,
		Y:       y,
		Angle:   math.Pi / 2,
		Health:  MaxHealth,
		Texture: texture,
	}
}

// TakeInput applies one input record to the player: movement with
// axis-separated collision, jump launch, turning and pitch. Dead players are
// frozen; when allowDeadLook is set they may still turn and pitch while
// waiting to respawn.
func (p *Player) TakeInput(in *Input, w *World, allowDeadLook bool) {
	if p.Health == 0 {
		if allowDeadLook {
			p.applyLook(in)
		}
		return
	}

	var slower float32 = 1.0
	if (in.Left || in.Right) && (in.Forth || in.Back) {
		slower = 0.707 // Preserve uniform speed on diagonals
	}

	dirX := float32(math.Cos(float64(p.Angle)))
	dirY := float32(math.Sin(float64(p.Angle)))

	speed := float32(MoveSpeed) * slower
	forward := speed
	if in.Sprint {
		// Sprint boosts the forward axis only, after diagonal normalization
		forward *= SprintFactor
	}

	newX, newY := p.X, p.Y
	if in.Forth {
		newX += dirX * forward
		newY += dirY * forward
	}
	if in.Back {
		newX -= dirX * speed
		newY -= dirY * speed
	}

	strafeX, strafeY := -dirY, dirX
	if in.Right {
		newX += strafeX * speed
		newY += strafeY * speed
	}
	if in.Left {
		newX -= strafeX * speed
		newY -= strafeY * speed
	}

	p.moveWithCollision(newX, newY, w)

	if in.Jump && p.Z == 0 {
		p.VelZ = JumpVelocity
	}

	if in.Shoot {
		p.Shooting = true
		p.ShootTimer = ShotCooldown
	}

	p.applyLook(in)
}

func (p *Player) applyLook(in *Input) {
	p.Angle += in.Turn * RotSpeed
	p.Pitch = clamp(p.Pitch+in.Pitch*RotSpeed*2, -PitchLimit, PitchLimit)
}

// moveWithCollision resolves each axis independently: the X displacement is
// tested with the two leading corners of the player's radius at the old Y,
// then Y symmetrically at the old X. Blocking one axis leaves the other free,
// which is what makes players slide along walls instead of sticking.
func (p *Player) moveWithCollision(newX, newY float32, w *World) {
	dx := newX - p.X
	dy := newY - p.Y

	clearX := true
	clearY := true

	if dx != 0 {
		cx := newX + copysign(PlayerRadius, dx)
		if w.GetTile(tileIndex(cx), tileIndex(p.Y+PlayerRadius)) != TileOpen ||
			w.GetTile(tileIndex(cx), tileIndex(p.Y-PlayerRadius)) != TileOpen {
			clearX = false
		}
	}

	if dy != 0 {
		cy := newY + copysign(PlayerRadius, dy)
		if w.GetTile(tileIndex(p.X-PlayerRadius), tileIndex(cy)) != TileOpen ||
			w.GetTile(tileIndex(p.X+PlayerRadius), tileIndex(cy)) != TileOpen {
			clearY = false
		}
	}

	if clearX {
		p.X += dx
	}
	if clearY {
		p.Y += dy
	}
}

// Respawn puts the player back into play at the given position.
func (p *Player) Respawn(x, y float32) {
	p.X = x
	p.Y = y
	p.Z = 0
	p.VelZ = 0
	p.Health = MaxHealth
	p.Dying = false
	p.Shooting = false
	p.Anim = AnimIdle
}

func tileIndex(v float32) int {
	return int(math.Floor(float64(v)))
}

func copysign(mag, sign float32) float32 {
	return float32(math.Copysign(float64(mag), float64(sign)))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
