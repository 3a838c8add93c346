// Command courtside ingests one EasyStats box-score export and recomputes
// every derived view.
//
// Usage:
//
//	courtside [-playoff] [-season "2025 Spring"] [-opp-score N] <export.html>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/prettygood/courtside/internal/config"
	"github.com/prettygood/courtside/internal/ingest/boxscore"
	"github.com/prettygood/courtside/internal/service"
)

func main() {
	playoff := flag.Bool("playoff", false, "mark as playoff game")
	season := flag.String("season", "", `force the season, e.g. "2025 Spring"`)
	oppScore := flag.Int("opp-score", -1, "override opponent score")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <export.html>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	exportFile := flag.Arg(0)
	if _, err := os.Stat(exportFile); err != nil {
		log.Fatalf("Export file not found: %s", exportFile)
	}

	cfg := config.Load()
	st, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	opts := boxscore.Options{
		IsPlayoff:    *playoff,
		ForcedSeason: *season,
	}
	if *oppScore >= 0 {
		opts.OpponentScoreOverride = oppScore
	}

	log.Printf("Processing %s for: %s", exportFile, cfg.TeamName)
	if *playoff {
		log.Println("📍 PLAYOFF game")
	}
	if *season != "" {
		log.Printf("📅 Season: %s", *season)
	}
	if opts.OpponentScoreOverride != nil {
		log.Printf("🏀 Opponent score: %d", *opts.OpponentScoreOverride)
	}

	pipeline := service.NewPipeline(st, cfg.TeamName, cfg.TeamVariants)
	result, err := pipeline.IngestFile(context.Background(), exportFile, opts)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	log.Printf("✓ Done: %s vs %s (%s %d-%d)",
		result.Game.Date, result.Game.Opponent,
		result.Game.Result, result.Game.Score.Us, result.Game.Score.Them)
}
