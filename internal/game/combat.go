package game

import "math"

// MeasureShot resolves a hitscan shot from the given player against every
// other entity. It is a pure query: the closest target inside the shot's
// range, in front of the shooter, within the cylindrical hit capsule and not
// occluded by a wall is returned; damage application is the caller's job.
func (m *MatchState) MeasureShot(shooterID uint64) (uint64, bool) {
	shooter, ok := m.Players[shooterID]
	if !ok || shooter.Health == 0 {
		return 0, false
	}

	shotDirX := float32(math.Cos(float64(shooter.Angle)))
	shotDirY := float32(math.Sin(float64(shooter.Angle)))

	wallDistSq := m.nearestWallDistanceSquared(shooter, shotDirX, shotDirY)

	closest := float32(math.MaxFloat32)
	var targetID uint64
	found := false

	for id, target := range m.Players {
		if id == shooterID {
			continue
		}

		dx := target.X - shooter.X
		dy := target.Y - shooter.Y
		distSq := dx*dx + dy*dy

		if distSq >= wallDistSq || distSq >= ShotMaxRangeSq {
			continue
		}

		// Behind the shooter
		dot := dx*shotDirX + dy*shotDirY
		if dot <= 0 {
			continue
		}

		// Squared length of the projection onto the shot direction, then
		// the squared perpendicular offset from the line of fire.
		projLenSq := dot * dot / (shotDirX*shotDirX + shotDirY*shotDirY)
		perpDistSq := distSq - projLenSq

		halfWidth := float32(SpriteWidth) * 0.5
		if perpDistSq >= halfWidth*halfWidth {
			continue
		}

		// Vertical band: pitch acts as a linear height offset per unit of
		// distance, not a true angle.
		dist := float32(math.Sqrt(float64(distSq)))
		shotHeight := shooter.Z + EyeHeight + shooter.Pitch*dist*0.5

		targetHeight := float32(SpriteHeight)
		if target.Health == 0 {
			targetHeight *= CorpseHeightFactor
		}

		if shotHeight <= target.Z-0.5 || shotHeight >= target.Z+targetHeight-0.5 {
			continue
		}

		if dist < closest {
			closest = dist
			targetID = id
			found = true
		}
	}

	return targetID, found
}

// nearestWallDistanceSquared ray-marches the grid (DDA) from the player along
// the shot direction and returns the squared distance to the first wall tile.
// The closed map boundary guarantees termination.
func (m *MatchState) nearestWallDistanceSquared(p *Player, dirX, dirY float32) float32 {
	mapX := tileIndex(p.X)
	mapY := tileIndex(p.Y)

	deltaDistX := float32(math.Inf(1))
	if dirX != 0 {
		r := dirY / dirX
		deltaDistX = float32(math.Sqrt(float64(1 + r*r)))
	}
	deltaDistY := float32(math.Inf(1))
	if dirY != 0 {
		r := dirX / dirY
		deltaDistY = float32(math.Sqrt(float64(1 + r*r)))
	}

	var stepX, stepY int
	var sideDistX, sideDistY float32

	if dirX < 0 {
		stepX = -1
		sideDistX = (p.X - float32(mapX)) * deltaDistX
	} else {
		stepX = 1
		sideDistX = (float32(mapX) + 1 - p.X) * deltaDistX
	}

	if dirY < 0 {
		stepY = -1
		sideDistY = (p.Y - float32(mapY)) * deltaDistY
	} else {
		stepY = 1
		sideDistY = (float32(mapY) + 1 - p.Y) * deltaDistY
	}

	var dist float32
	for {
		if sideDistX < sideDistY {
			dist = sideDistX
			sideDistX += deltaDistX
			mapX += stepX
		} else {
			dist = sideDistY
			sideDistY += deltaDistY
			mapY += stepY
		}

		if m.World.GetTile(mapX, mapY) > TileOpen {
			return dist * dist
		}
	}
}
