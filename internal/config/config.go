// Package config loads server settings from the environment, with an optional
// .env file picked up at startup.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Addr          string        // UDP bind address for the game transport
	SpectateAddr  string        // HTTP bind address for the spectator feed, empty disables it
	MapName       string        // Map file under maps/, without extension
	RandomMap     bool          // Generate a random map instead of loading one
	RandomMapSide int           // Side length of the generated map
	ScoreToWin    int           // Kills needed to end the match
	Timeout       time.Duration // Session liveness timeout
	AllowDeadLook bool          // Let dead players keep looking around
}

// Load reads the environment (and .env, if present) into a Config. Every
// value has a default, so an empty environment yields a playable server.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	return Config{
		Addr:          envString("GRIDFIRE_ADDR", ":8080"),
		SpectateAddr:  envString("GRIDFIRE_SPECTATE_ADDR", ""),
		MapName:       envString("GRIDFIRE_MAP", "map1"),
		RandomMap:     envBool("GRIDFIRE_RANDOM_MAP", false),
		RandomMapSide: envInt("GRIDFIRE_RANDOM_MAP_SIDE", 16),
		ScoreToWin:    envInt("GRIDFIRE_SCORE_TO_WIN", 10),
		Timeout:       envDuration("GRIDFIRE_SESSION_TIMEOUT", 5*time.Second),
		AllowDeadLook: envBool("GRIDFIRE_ALLOW_DEAD_LOOK", false),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
