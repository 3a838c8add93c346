// Package repository provides typed accessors over the blob store: each
// repository owns one persisted shape, its key construction, and its
// absent-key default.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prettygood/courtside/internal/store"
)

// PlayerRepository persists the player registry (jersey number → player).
type PlayerRepository struct {
	store store.Store
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(st store.Store) *PlayerRepository {
	return &PlayerRepository{store: st}
}

// Load returns the registry, or an empty map when none has been saved yet.
func (r *PlayerRepository) Load(ctx context.Context) (map[string]*store.Player, error) {
	blob, ok, err := r.store.Load(ctx, store.KeyPlayers)
	if err != nil {
		return nil, err
	}
	players := make(map[string]*store.Player)
	if !ok {
		return players, nil
	}
	if err := json.Unmarshal(blob, &players); err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}
	return players, nil
}

// Save persists the full registry.
func (r *PlayerRepository) Save(ctx context.Context, players map[string]*store.Player) error {
	blob, err := json.MarshalIndent(players, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding players: %w", err)
	}
	return r.store.Save(ctx, store.KeyPlayers, blob)
}
