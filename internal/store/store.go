// Package store defines the persisted model types and the blob store the
// engine runs against. Three interchangeable backends are provided: local
// files (the default), PostgreSQL, and Redis.
package store

import "context"

// Well-known blob keys. Game blobs live under KeyGamePrefix followed by
// "<date>-<opponent-slug>".
const (
	KeyPlayers      = "players"
	KeyRecords      = "records"
	KeyGamesIndex   = "games_index"
	KeySeasonsMeta  = "seasons_meta"
	KeyGamePrefix   = "games/"
	KeySeasonPrefix = "seasons/"
)

// Store is a key-value blob store. Load reports ok=false when the key is
// absent; absence is never an error. Save must be atomic: a crash mid-write
// never leaves a reader with a partial blob. List returns every key with the
// given prefix in ascending lexicographic order — aggregation passes rely on
// that order for deterministic tie-breaking.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, blob []byte) error
	List(ctx context.Context, prefix string) ([]string, error)
}
