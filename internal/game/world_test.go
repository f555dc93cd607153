package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetTileOutOfBoundsIsWall(t *testing.T) {
	w := DefaultWorld()

	cases := []struct{ x, y int }{
		{-1, 0}, {0, -1}, {100, 0}, {0, 100}, {-5, -5}, {100, 100},
	}
	for _, c := range cases {
		if got := w.GetTile(c.x, c.y); got != TileWall {
			t.Errorf("GetTile(%d, %d) = %d, want wall", c.x, c.y, got)
		}
	}

	if got := w.GetTile(1, 1); got != TileOpen {
		t.Errorf("GetTile(1, 1) = %d, want open", got)
	}
}

func TestGetTileEmptyWorldIsAllWall(t *testing.T) {
	w := &World{}
	if got := w.GetTile(0, 0); got != TileWall {
		t.Fatalf("empty world GetTile(0, 0) = %d, want wall", got)
	}
}

func TestLoadWorldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.toml")
	content := "map = [\n    [1, 1, 1],\n    [1, 0, 1],\n    [1, 1, 1],\n]\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := LoadWorldFile(path)
	if err != nil {
		t.Fatalf("LoadWorldFile: %v", err)
	}
	if len(w.Map) != 3 {
		t.Fatalf("rows = %d, want 3", len(w.Map))
	}
	if w.GetTile(1, 1) != TileOpen {
		t.Errorf("center tile should be open")
	}
	if w.GetTile(0, 0) != TileWall {
		t.Errorf("corner tile should be a wall")
	}
}

func TestLoadWorldFileMissing(t *testing.T) {
	if _, err := LoadWorldFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected an error for a missing map file")
	}
}

func TestGenerateWorldKeepsBoundaryWalled(t *testing.T) {
	for trial := 0; trial < 10; trial++ {
		w := GenerateWorld(16, 16)

		for x := 0; x < 16; x++ {
			if w.GetTile(x, 0) == TileOpen || w.GetTile(x, 15) == TileOpen {
				t.Fatalf("trial %d: boundary row carved at x=%d", trial, x)
			}
		}
		for y := 0; y < 16; y++ {
			if w.GetTile(0, y) == TileOpen || w.GetTile(15, y) == TileOpen {
				t.Fatalf("trial %d: boundary column carved at y=%d", trial, y)
			}
		}

		if w.GetTile(8, 8) != TileOpen {
			t.Fatalf("trial %d: carve origin is not open", trial)
		}
		if len(w.OpenTiles()) == 0 {
			t.Fatalf("trial %d: generated map has no open tiles", trial)
		}
	}
}

func TestGenerateWorldClampsSide(t *testing.T) {
	w := GenerateWorld(1, 500)
	if len(w.Map) != MaxRandomMapSide {
		t.Errorf("height = %d, want clamped to %d", len(w.Map), MaxRandomMapSide)
	}
	if len(w.Map[0]) != MinRandomMapSide {
		t.Errorf("width = %d, want clamped to %d", len(w.Map[0]), MinRandomMapSide)
	}
}

func TestRandomSpawnPointLandsOnOpenTile(t *testing.T) {
	w := DefaultWorld()
	for i := 0; i < 50; i++ {
		x, y := w.RandomSpawnPoint()
		if w.GetTile(tileIndex(x), tileIndex(y)) != TileOpen {
			t.Fatalf("spawn point (%f, %f) is not on an open tile", x, y)
		}
	}
}

func TestRandomSpawnPointFallback(t *testing.T) {
	w := &World{Map: [][]uint8{{1, 1}, {1, 1}}}
	x, y := w.RandomSpawnPoint()
	if x != 1.5 || y != 1.5 {
		t.Fatalf("all-wall spawn = (%f, %f), want fixed fallback (1.5, 1.5)", x, y)
	}
}
