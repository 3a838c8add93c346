// Command import-players merges a legacy roster export (a JSON array of
// players) into the registry, preserving accumulated teams.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prettygood/courtside/internal/config"
	"github.com/prettygood/courtside/internal/service"
	"github.com/prettygood/courtside/internal/store"
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s <old_players.json>\n", os.Args[0])
		os.Exit(2)
	}

	legacy, err := loadLegacy(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load legacy players: %v", err)
	}

	cfg := config.Load()
	st, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	pipeline := service.NewPipeline(st, cfg.TeamName, cfg.TeamVariants)
	if err := pipeline.ImportPlayers(context.Background(), legacy); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("✅ Import complete")
}

func loadLegacy(path string) ([]*store.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var legacy []*store.Player
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("decoding legacy players: %w", err)
	}
	return legacy, nil
}
