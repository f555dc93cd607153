package game

import "math/rand"

// GenerateWorld builds a random maze-like map by carving a path outward from
// the center of a solid grid. The outermost ring of tiles is never carved, so
// the boundary stays walled.
func GenerateWorld(width, height int) *World {
	if width < MinRandomMapSide {
		width = MinRandomMapSide
	}
	if width > MaxRandomMapSide {
		width = MaxRandomMapSide
	}
	if height < MinRandomMapSide {
		height = MinRandomMapSide
	}
	if height > MaxRandomMapSide {
		height = MaxRandomMapSide
	}

	w := &World{Map: make([][]uint8, height)}
	for y := range w.Map {
		w.Map[y] = make([]uint8, width)
		for x := range w.Map[y] {
			w.Map[y][x] = TileWall
		}
	}

	carvePath(w, width/2, height/2, false, 0, 0)
	return w
}

// carvePath opens the given tile and recursively walks into neighboring wall
// tiles. The previous direction is preferred so corridors run straight, with a
// small chance to deviate; dead tiles next to open space are occasionally
// carved anyway to punch holes between corridors.
func carvePath(w *World, x, y int, includeCorners bool, prevDX, prevDY int) {
	w.Map[y][x] = TileOpen

	directions := [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	if prevDX == 0 && prevDY == 0 || rand.Intn(100) < pathDeviationChance {
		rand.Shuffle(len(directions), func(i, j int) {
			directions[i], directions[j] = directions[j], directions[i]
		})
	} else {
		// Put the previous direction first, shuffle the rest
		for i, d := range directions {
			if d[0] == prevDX && d[1] == prevDY {
				directions[0], directions[i] = directions[i], directions[0]
				break
			}
		}
		rest := directions[1:]
		rand.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
	}

	for _, d := range directions {
		nx, ny := x+d[0], y+d[1]
		// Stay off the boundary ring
		if nx < 1 || ny < 1 || ny >= len(w.Map)-1 || nx >= len(w.Map[ny])-1 {
			continue
		}
		if w.GetTile(nx, ny) == TileOpen {
			continue
		}
		if allAdjacentWalls(w, nx, ny, x, y, includeCorners) {
			carvePath(w, nx, ny, includeCorners, d[0], d[1])
		} else if rand.Intn(100) < holeChance {
			carvePath(w, nx, ny, includeCorners, d[0], d[1])
		}
	}
}

// allAdjacentWalls reports whether every neighbor of (x, y) is still a wall,
// ignoring the tile the carve came from. Corners are only considered when
// includeCorners is set.
func allAdjacentWalls(w *World, x, y, fromX, fromY int, includeCorners bool) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if !includeCorners && dx != 0 && dy != 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx == fromX && ny == fromY {
				continue
			}
			if nx < 0 || ny < 0 || ny >= len(w.Map) || nx >= len(w.Map[ny]) {
				continue
			}
			if w.GetTile(nx, ny) == TileOpen {
				return false
			}
		}
	}
	return true
}
