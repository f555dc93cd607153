package game

import (
	"math"
	"testing"
)

// arena builds a size x size world with a walled boundary and an open
// interior.
func arena(size int) *World {
	w := &World{Map: make([][]uint8, size)}
	for y := range w.Map {
		w.Map[y] = make([]uint8, size)
		for x := range w.Map[y] {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				w.Map[y][x] = TileWall
			}
		}
	}
	return w
}

func livePlayer(x, y, angle float32) *Player {
	return &Player{X: x, Y: y, Angle: angle, Health: MaxHealth}
}

func TestNoopInputLeavesPlayerUnchanged(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 1.2)
	p.Pitch = 0.3

	p.TakeInput(&Input{}, w, false)

	if p.X != 3.5 || p.Y != 3.5 {
		t.Errorf("position moved to (%f, %f) on empty input", p.X, p.Y)
	}
	if p.Angle != 1.2 {
		t.Errorf("angle changed to %f on empty input", p.Angle)
	}
	if p.Pitch != 0.3 {
		t.Errorf("pitch changed to %f on empty input", p.Pitch)
	}
}

func TestWallSlide(t *testing.T) {
	// Wall at tile (3, 2); player at (2.5, 2.5) pushing into it diagonally
	// should be blocked on X but keep sliding along Y.
	w := arena(8)
	w.Map[2][3] = TileWall

	p := livePlayer(2.5, 2.5, 0) // facing +X
	in := &Input{Forth: true, Right: true}

	for i := 0; i < 20; i++ {
		p.TakeInput(in, w, false)
	}

	if p.X > 2.5+0.31 {
		t.Errorf("x = %f, want blocked before the wall at tile 3 (radius %v)", p.X, PlayerRadius)
	}
	if p.Y < 2.9 {
		t.Errorf("y = %f, want sliding along the wall past 2.9", p.Y)
	}
}

func TestDiagonalSpeedMatchesStraight(t *testing.T) {
	w := arena(32)
	const ticks = 100

	straight := livePlayer(3.5, 3.5, 0)
	for i := 0; i < ticks; i++ {
		straight.TakeInput(&Input{Forth: true}, w, false)
	}
	straightDist := math.Hypot(float64(straight.X-3.5), float64(straight.Y-3.5))

	diagonal := livePlayer(3.5, 3.5, 0)
	for i := 0; i < ticks; i++ {
		diagonal.TakeInput(&Input{Forth: true, Right: true}, w, false)
	}
	diagonalDist := math.Hypot(float64(diagonal.X-3.5), float64(diagonal.Y-3.5))

	if diff := math.Abs(straightDist - diagonalDist); diff > 0.01 {
		t.Errorf("straight %f vs diagonal %f differ by %f, want equal speed", straightDist, diagonalDist, diff)
	}
}

func TestSprintBoostsForwardOnly(t *testing.T) {
	w := arena(32)

	walk := livePlayer(3.5, 3.5, 0)
	walk.TakeInput(&Input{Forth: true}, w, false)
	walkDX := walk.X - 3.5

	sprint := livePlayer(3.5, 3.5, 0)
	sprint.TakeInput(&Input{Forth: true, Sprint: true}, w, false)
	sprintDX := sprint.X - 3.5

	want := walkDX * SprintFactor
	if math.Abs(float64(sprintDX-want)) > 1e-6 {
		t.Errorf("sprint dx = %f, want %f", sprintDX, want)
	}

	// Sprint without forward input moves nothing
	idle := livePlayer(3.5, 3.5, 0)
	idle.TakeInput(&Input{Sprint: true}, w, false)
	if idle.X != 3.5 || idle.Y != 3.5 {
		t.Errorf("sprint alone moved player to (%f, %f)", idle.X, idle.Y)
	}
}

func TestPitchClampHolds(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 0)

	for i := 0; i < 1000; i++ {
		p.TakeInput(&Input{Pitch: 100}, w, false)
	}
	if p.Pitch > PitchLimit+1e-6 {
		t.Errorf("pitch = %f, want clamped at %f", p.Pitch, float32(PitchLimit))
	}

	for i := 0; i < 1000; i++ {
		p.TakeInput(&Input{Pitch: -100}, w, false)
	}
	if p.Pitch < -PitchLimit-1e-6 {
		t.Errorf("pitch = %f, want clamped at %f", p.Pitch, -float32(PitchLimit))
	}
}

func TestJumpOnlyLaunchesFromGround(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 0)

	p.TakeInput(&Input{Jump: true}, w, false)
	if p.VelZ != JumpVelocity {
		t.Fatalf("velZ = %f after jump, want %f", p.VelZ, float32(JumpVelocity))
	}

	p.Z = 0.1
	p.VelZ = 0.01
	p.TakeInput(&Input{Jump: true}, w, false)
	if p.VelZ != 0.01 {
		t.Errorf("velZ = %f, want unchanged mid-air", p.VelZ)
	}
}

func TestDeadPlayerIsFrozen(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 1.0)
	p.Health = 0
	p.Pitch = 0.2

	in := &Input{Forth: true, Left: true, Turn: 5, Pitch: 5, Jump: true}
	p.TakeInput(in, w, false)

	if p.X != 3.5 || p.Y != 3.5 {
		t.Errorf("dead player moved to (%f, %f)", p.X, p.Y)
	}
	if p.Angle != 1.0 || p.Pitch != 0.2 {
		t.Errorf("dead player turned (angle %f, pitch %f)", p.Angle, p.Pitch)
	}
	if p.VelZ != 0 {
		t.Errorf("dead player jumped (velZ %f)", p.VelZ)
	}
}

func TestDeadPlayerMayLookWhenEnabled(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 1.0)
	p.Health = 0

	p.TakeInput(&Input{Forth: true, Turn: 1}, w, true)

	if p.X != 3.5 || p.Y != 3.5 {
		t.Errorf("dead player moved to (%f, %f) with look-through enabled", p.X, p.Y)
	}
	if p.Angle == 1.0 {
		t.Errorf("angle unchanged, want turning allowed with look-through enabled")
	}
}

func TestShootIntentSetsCooldown(t *testing.T) {
	w := arena(8)
	p := livePlayer(3.5, 3.5, 0)

	p.TakeInput(&Input{Shoot: true}, w, false)
	if !p.Shooting {
		t.Fatal("shooting flag not set")
	}
	if p.ShootTimer != ShotCooldown {
		t.Errorf("shoot timer = %v, want %v", p.ShootTimer, ShotCooldown)
	}

	dead := livePlayer(3.5, 3.5, 0)
	dead.Health = 0
	dead.TakeInput(&Input{Shoot: true}, w, false)
	if dead.Shooting {
		t.Error("dead player set the shooting flag")
	}
}
