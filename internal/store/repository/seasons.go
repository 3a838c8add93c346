package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prettygood/courtside/internal/store"
)

// SeasonRepository persists per-season aggregates and the seasons metadata.
type SeasonRepository struct {
	store store.Store
}

// NewSeasonRepository creates a new season repository.
func NewSeasonRepository(st store.Store) *SeasonRepository {
	return &SeasonRepository{store: st}
}

// SaveAggregate persists one season's aggregate blob.
func (r *SeasonRepository) SaveAggregate(ctx context.Context, seasonKey string, agg *store.SeasonAggregate) error {
	blob, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding season %s: %w", seasonKey, err)
	}
	return r.store.Save(ctx, store.KeySeasonPrefix+seasonKey, blob)
}

// GetAggregate loads one season's aggregate by season key.
func (r *SeasonRepository) GetAggregate(ctx context.Context, seasonKey string) (*store.SeasonAggregate, error) {
	blob, ok, err := r.store.Load(ctx, store.KeySeasonPrefix+seasonKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("season %s not found", seasonKey)
	}
	var agg store.SeasonAggregate
	if err := json.Unmarshal(blob, &agg); err != nil {
		return nil, fmt.Errorf("decoding season %s: %w", seasonKey, err)
	}
	return &agg, nil
}

// ListKeys returns every season key with a persisted aggregate, ascending.
func (r *SeasonRepository) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := r.store.List(ctx, store.KeySeasonPrefix)
	if err != nil {
		return nil, err
	}
	seasons := make([]string, 0, len(keys))
	for _, key := range keys {
		seasons = append(seasons, strings.TrimPrefix(key, store.KeySeasonPrefix))
	}
	return seasons, nil
}

// LoadMeta returns the seasons metadata, or an empty map when none exists.
func (r *SeasonRepository) LoadMeta(ctx context.Context) (map[string]store.SeasonMeta, error) {
	blob, ok, err := r.store.Load(ctx, store.KeySeasonsMeta)
	if err != nil {
		return nil, err
	}
	meta := make(map[string]store.SeasonMeta)
	if !ok {
		return meta, nil
	}
	if err := json.Unmarshal(blob, &meta); err != nil {
		return nil, fmt.Errorf("decoding seasons meta: %w", err)
	}
	return meta, nil
}

// SaveMeta persists the seasons metadata.
func (r *SeasonRepository) SaveMeta(ctx context.Context, meta map[string]store.SeasonMeta) error {
	blob, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seasons meta: %w", err)
	}
	return r.store.Save(ctx, store.KeySeasonsMeta, blob)
}

// SetMeta updates one season's metadata entry.
func (r *SeasonRepository) SetMeta(ctx context.Context, meta store.SeasonMeta) error {
	all, err := r.LoadMeta(ctx)
	if err != nil {
		return err
	}
	all[meta.Key] = meta
	return r.SaveMeta(ctx, all)
}
