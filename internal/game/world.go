package game

import (
	"fmt"
	"math/rand"

	"github.com/BurntSushi/toml"
)

// World is a rectangular grid of tile codes, immutable after construction.
// Row-major: Map[y][x]. 0 is open floor, anything greater is a wall variant.
type World struct {
	Map [][]uint8 `toml:"map" msgpack:"map" json:"map"`
}

// GetTile returns the tile code at column x, row y. Anything out of bounds
// reads as a wall so the map boundary is always closed.
func (w *World) GetTile(x, y int) uint8 {
	if y < 0 || y >= len(w.Map) {
		return TileWall
	}
	row := w.Map[y]
	if x < 0 || x >= len(row) {
		return TileWall
	}
	return row[x]
}

// OpenTiles returns the coordinates of every open tile.
func (w *World) OpenTiles() [][2]int {
	var open [][2]int
	for y := range w.Map {
		for x := range w.Map[y] {
			if w.Map[y][x] == TileOpen {
				open = append(open, [2]int{x, y})
			}
		}
	}
	return open
}

// RandomSpawnPoint picks a uniformly random open tile and returns its center.
// Falls back to a fixed position if the map has no open tile at all.
func (w *World) RandomSpawnPoint() (float32, float32) {
	open := w.OpenTiles()
	if len(open) == 0 {
		return 1.5, 1.5
	}
	tile := open[rand.Intn(len(open))]
	return float32(tile[0]) + 0.5, float32(tile[1]) + 0.5
}

// LoadWorldFile parses a TOML map file containing a "map" array of rows.
func LoadWorldFile(path string) (*World, error) {
	var w World
	if _, err := toml.DecodeFile(path, &w); err != nil {
		return nil, fmt.Errorf("parse map file %s: %w", path, err)
	}
	if len(w.Map) == 0 {
		return nil, fmt.Errorf("map file %s contains no rows", path)
	}
	return &w, nil
}

// DefaultWorld returns the built-in fallback map.
func DefaultWorld() *World {
	return &World{Map: [][]uint8{
		{1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 1, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}}
}
