// Package service wires the ingestion pipeline together: extract, build,
// persist, then recompute every derived view from the full corpus.
package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/prettygood/courtside/internal/aggregate"
	"github.com/prettygood/courtside/internal/ingest/boxscore"
	"github.com/prettygood/courtside/internal/ingest/easystats"
	"github.com/prettygood/courtside/internal/registry"
	"github.com/prettygood/courtside/internal/store"
	"github.com/prettygood/courtside/internal/store/repository"
)

// Pipeline is the single-writer ingestion engine for one team. Callers must
// serialize ingestion calls; there is no internal locking.
type Pipeline struct {
	teamName     string
	teamVariants []string

	players *repository.PlayerRepository
	games   *repository.GameRepository
	records *repository.RecordsRepository
	seasons *repository.SeasonRepository
}

// NewPipeline creates a pipeline over a blob store.
func NewPipeline(st store.Store, teamName string, teamVariants []string) *Pipeline {
	return &Pipeline{
		teamName:     teamName,
		teamVariants: teamVariants,
		players:      repository.NewPlayerRepository(st),
		games:        repository.NewGameRepository(st),
		records:      repository.NewRecordsRepository(st),
		seasons:      repository.NewSeasonRepository(st),
	}
}

// IngestResult reports what one ingestion produced.
type IngestResult struct {
	GameKey string
	Game    *store.Game
}

// IngestFile ingests one EasyStats HTML export.
func (p *Pipeline) IngestFile(ctx context.Context, path string, opts boxscore.Options) (*IngestResult, error) {
	export, err := easystats.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return p.Ingest(ctx, export, opts)
}

// Ingest builds a game from an extracted export, persists it along with the
// registry and index, and recomputes the record book and season aggregates
// from the full corpus. A build failure aborts before any persistence side
// effect.
func (p *Pipeline) Ingest(ctx context.Context, export *easystats.Export, opts boxscore.Options) (*IngestResult, error) {
	players, err := p.players.Load(ctx)
	if err != nil {
		return nil, err
	}
	reg := registry.New(players, p.teamName)
	builder := boxscore.NewBuilder(p.teamVariants, reg)

	result, err := builder.Build(export.Title, export.DateText, export.Rows, opts)
	if err != nil {
		return nil, err
	}
	game := result.Game

	key, err := p.games.Save(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("saving game: %w", err)
	}
	log.Printf("✓ Saved game: %s", key)

	if err := p.games.UpdateIndex(ctx, game); err != nil {
		return nil, fmt.Errorf("updating games index: %w", err)
	}

	if err := p.players.Save(ctx, reg.Players()); err != nil {
		return nil, fmt.Errorf("saving players: %w", err)
	}
	log.Println("✓ Updated players")

	if result.SeasonMeta != nil {
		if err := p.seasons.SetMeta(ctx, *result.SeasonMeta); err != nil {
			return nil, fmt.Errorf("saving season meta: %w", err)
		}
	}

	if err := p.Recompute(ctx); err != nil {
		return nil, err
	}

	return &IngestResult{GameKey: key, Game: game}, nil
}

// Recompute rebuilds the record book and every season aggregate from the
// complete stored corpus. Cost is linear in total game count — the accepted
// trade-off for views that are trivially correct and idempotent.
func (p *Pipeline) Recompute(ctx context.Context) error {
	games, err := p.games.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("loading game corpus: %w", err)
	}
	players, err := p.players.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading players: %w", err)
	}

	book := aggregate.BuildRecordBook(games, players)
	if err := p.records.Save(ctx, book); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	log.Println("✓ Records updated")

	aggs := aggregate.BuildSeasonAggregates(games)
	for _, seasonKey := range sortedKeys(aggs) {
		if err := p.seasons.SaveAggregate(ctx, seasonKey, aggs[seasonKey]); err != nil {
			return fmt.Errorf("saving season %s: %w", seasonKey, err)
		}
		log.Printf("✓ Updated season: %s", seasonKey)
	}
	return nil
}

// Renumber rewrites every jersey number in the registry and the stored game
// corpus through the mapping, then recomputes the derived views. Not
// reversible — back up the store first.
func (p *Pipeline) Renumber(ctx context.Context, mapping map[string]string) error {
	players, err := p.players.Load(ctx)
	if err != nil {
		return err
	}
	if err := p.players.Save(ctx, registry.Remap(players, mapping)); err != nil {
		return fmt.Errorf("saving remapped players: %w", err)
	}

	games, err := p.games.LoadAll(ctx)
	if err != nil {
		return err
	}
	for _, kg := range games {
		registry.RemapGame(kg.Game, mapping)
		if _, err := p.games.Save(ctx, kg.Game); err != nil {
			return fmt.Errorf("saving remapped game %s: %w", kg.Key, err)
		}
	}
	log.Printf("✓ Remapped %d game files", len(games))

	return p.Recompute(ctx)
}

// ImportPlayers merges a legacy roster export into the registry.
func (p *Pipeline) ImportPlayers(ctx context.Context, legacy []*store.Player) error {
	players, err := p.players.Load(ctx)
	if err != nil {
		return err
	}
	registry.ImportLegacy(players, legacy)
	if err := p.players.Save(ctx, players); err != nil {
		return fmt.Errorf("saving imported players: %w", err)
	}
	log.Printf("✓ Imported %d players (total %d)", len(legacy), len(players))
	return nil
}

func sortedKeys(m map[string]*store.SeasonAggregate) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
