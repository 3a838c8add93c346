package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/prettygood/courtside/internal/store"
)

var opponentSlugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// OpponentSlug normalizes an opponent name for use in game keys:
// lowercase, non-alphanumeric runs collapsed to single hyphens.
func OpponentSlug(opponent string) string {
	slug := opponentSlugPattern.ReplaceAllString(strings.ToLower(opponent), "-")
	return strings.Trim(slug, "-")
}

// GameID is the storage identity of a game: "<date>-<opponent-slug>".
func GameID(date, opponent string) string {
	return date + "-" + OpponentSlug(opponent)
}

// GameKey is the full blob key for a game.
func GameKey(date, opponent string) string {
	return store.KeyGamePrefix + GameID(date, opponent)
}

// KeyedGame pairs a game with its storage key. Corpus scans hand these out
// in ascending key order (date, then opponent slug).
type KeyedGame struct {
	Key  string
	Game *store.Game
}

// GameRepository persists canonical game records and the games index.
type GameRepository struct {
	store store.Store
}

// NewGameRepository creates a new game repository.
func NewGameRepository(st store.Store) *GameRepository {
	return &GameRepository{store: st}
}

// Save persists one game under its derived key and returns that key.
func (r *GameRepository) Save(ctx context.Context, game *store.Game) (string, error) {
	blob, err := json.MarshalIndent(game, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding game: %w", err)
	}
	key := GameKey(game.Date, game.Opponent)
	if err := r.store.Save(ctx, key, blob); err != nil {
		return "", err
	}
	return key, nil
}

// Get loads one game by its full key.
func (r *GameRepository) Get(ctx context.Context, key string) (*store.Game, error) {
	blob, ok, err := r.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("game %s not found", key)
	}
	var game store.Game
	if err := json.Unmarshal(blob, &game); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", key, err)
	}
	return &game, nil
}

// LoadAll returns the entire game corpus in ascending key order.
func (r *GameRepository) LoadAll(ctx context.Context) ([]KeyedGame, error) {
	keys, err := r.store.List(ctx, store.KeyGamePrefix)
	if err != nil {
		return nil, err
	}
	games := make([]KeyedGame, 0, len(keys))
	for _, key := range keys {
		game, err := r.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		games = append(games, KeyedGame{Key: key, Game: game})
	}
	return games, nil
}

// LoadIndex returns the games index, or an empty map when none exists.
func (r *GameRepository) LoadIndex(ctx context.Context) (map[string]store.GameSummary, error) {
	blob, ok, err := r.store.Load(ctx, store.KeyGamesIndex)
	if err != nil {
		return nil, err
	}
	index := make(map[string]store.GameSummary)
	if !ok {
		return index, nil
	}
	if err := json.Unmarshal(blob, &index); err != nil {
		return nil, fmt.Errorf("decoding games index: %w", err)
	}
	return index, nil
}

// SaveIndex persists the games index.
func (r *GameRepository) SaveIndex(ctx context.Context, index map[string]store.GameSummary) error {
	blob, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding games index: %w", err)
	}
	return r.store.Save(ctx, store.KeyGamesIndex, blob)
}

// UpdateIndex adds or replaces the index entry for a saved game.
func (r *GameRepository) UpdateIndex(ctx context.Context, game *store.Game) error {
	index, err := r.LoadIndex(ctx)
	if err != nil {
		return err
	}
	id := GameID(game.Date, game.Opponent)
	index[id] = store.GameSummary{
		Filename:  id + ".json",
		Date:      game.Date,
		Season:    game.Season,
		Opponent:  game.Opponent,
		Score:     game.Score,
		Result:    game.Result,
		IsPlayoff: game.IsPlayoff,
	}
	return r.SaveIndex(ctx, index)
}
