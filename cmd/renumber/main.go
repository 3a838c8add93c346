// Command renumber fixes jersey numbers across the entire corpus when the
// scoring app exported different numbers than the players actually wear.
//
// It takes a JSON mapping of old → new numbers, backs up the data directory
// (file store only — the operation is not reversible), rewrites the registry
// and every game file, and recomputes all derived views.
//
// Example mapping.json:
//
//	{
//	  "1": "14",
//	  "11": "24",
//	  "28": "28"
//	}
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/prettygood/courtside/internal/config"
	"github.com/prettygood/courtside/internal/service"
	"github.com/prettygood/courtside/internal/store"
)

func main() {
	skipBackup := flag.Bool("no-backup", false, "skip the data directory backup (file store only)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <mapping.json>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	mapping, err := loadMapping(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load mapping: %v", err)
	}

	log.Println("Number mapping:")
	for oldNum, newNum := range mapping {
		log.Printf("  #%s → #%s", oldNum, newNum)
	}

	cfg := config.Load()
	st, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	if fs, ok := st.(*store.FileStore); ok && !*skipBackup {
		backupDir, err := backupDataDir(fs.BaseDir())
		if err != nil {
			log.Fatalf("Failed to create backup: %v", err)
		}
		log.Printf("✓ Created backup: %s", backupDir)
	}

	pipeline := service.NewPipeline(st, cfg.TeamName, cfg.TeamVariants)
	if err := pipeline.Renumber(context.Background(), mapping); err != nil {
		log.Fatalf("Renumbering failed: %v", err)
	}

	log.Println("✅ Renumbering complete")
}

func loadMapping(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mapping map[string]string
	if err := json.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("decoding mapping: %w", err)
	}
	return mapping, nil
}

func backupDataDir(dataDir string) (string, error) {
	backupDir := fmt.Sprintf("%s_backup_%s", dataDir, time.Now().Format("20060102_150405"))
	if err := os.CopyFS(backupDir, os.DirFS(dataDir)); err != nil {
		return "", err
	}
	return backupDir, nil
}
