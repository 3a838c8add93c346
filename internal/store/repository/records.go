package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prettygood/courtside/internal/store"
)

// RecordsRepository persists the all-time record book.
type RecordsRepository struct {
	store store.Store
}

// NewRecordsRepository creates a new records repository.
func NewRecordsRepository(st store.Store) *RecordsRepository {
	return &RecordsRepository{store: st}
}

// Load returns the record book, or an empty book when none exists.
func (r *RecordsRepository) Load(ctx context.Context) (*store.RecordBook, error) {
	blob, ok, err := r.store.Load(ctx, store.KeyRecords)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &store.RecordBook{
			Regular: make(map[string]store.RecordEntry),
			Playoff: make(map[string]store.RecordEntry),
			All:     make(map[string]store.RecordEntry),
		}, nil
	}
	var book store.RecordBook
	if err := json.Unmarshal(blob, &book); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return &book, nil
}

// Save persists the record book.
func (r *RecordsRepository) Save(ctx context.Context, book *store.RecordBook) error {
	blob, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return r.store.Save(ctx, store.KeyRecords, blob)
}
