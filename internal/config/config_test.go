package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if cfg.ScoreToWin != 10 {
		t.Errorf("score to win = %d, want 10", cfg.ScoreToWin)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.RandomMap {
		t.Error("random map enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GRIDFIRE_ADDR", ":9999")
	t.Setenv("GRIDFIRE_SCORE_TO_WIN", "3")
	t.Setenv("GRIDFIRE_RANDOM_MAP", "true")
	t.Setenv("GRIDFIRE_RANDOM_MAP_SIDE", "20")
	t.Setenv("GRIDFIRE_SESSION_TIMEOUT", "30s")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Addr)
	}
	if cfg.ScoreToWin != 3 {
		t.Errorf("score to win = %d, want 3", cfg.ScoreToWin)
	}
	if !cfg.RandomMap || cfg.RandomMapSide != 20 {
		t.Errorf("random map = (%t, %d), want (true, 20)", cfg.RandomMap, cfg.RandomMapSide)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", cfg.Timeout)
	}
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("GRIDFIRE_SCORE_TO_WIN", "lots")
	t.Setenv("GRIDFIRE_SESSION_TIMEOUT", "soon")
	t.Setenv("GRIDFIRE_RANDOM_MAP", "maybe")

	cfg := Load()

	if cfg.ScoreToWin != 10 {
		t.Errorf("score to win = %d, want default 10 on bad value", cfg.ScoreToWin)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want default 5s on bad value", cfg.Timeout)
	}
	if cfg.RandomMap {
		t.Error("bad bool enabled random map")
	}
}
