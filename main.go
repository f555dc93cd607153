package main

import (
	"fmt"
	"log"

	"gridfire/internal/config"
	"gridfire/internal/game"
	"gridfire/internal/server"
)

func main() {
	cfg := config.Load()

	var world *game.World
	if cfg.RandomMap {
		world = game.GenerateWorld(cfg.RandomMapSide, cfg.RandomMapSide)
		log.Printf("Generated random %dx%d map", cfg.RandomMapSide, cfg.RandomMapSide)
	} else {
		var err error
		world, err = game.LoadWorldFile(fmt.Sprintf("maps/%s.toml", cfg.MapName))
		if err != nil {
			log.Printf("Could not load map %q (%v), using built-in map", cfg.MapName, err)
			world = game.DefaultWorld()
		}
	}

	srv := server.New(cfg, world)
	if err := srv.Run(); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
