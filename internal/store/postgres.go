package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps blobs in a single key-value table. Upserts are
// transactional, which gives us the atomic-save guarantee for free.
type PostgresStore struct {
	conn *sql.DB
}

// NewPostgresStore opens a connection, verifies it, and ensures the blobs
// table exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{conn: db}
	if err := s.createSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *PostgresStore) createSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS blobs (
			key        TEXT PRIMARY KEY,
			blob       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.conn.Exec(query); err != nil {
		return fmt.Errorf("failed to create blobs table: %w", err)
	}
	return nil
}

// Load fetches a blob, reporting ok=false when the key is absent.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var blob []byte
	err := s.conn.QueryRowContext(ctx, "SELECT blob FROM blobs WHERE key = $1", key).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	return blob, true, nil
}

// Save upserts the blob under the key.
func (s *PostgresStore) Save(ctx context.Context, key string, blob []byte) error {
	query := `
		INSERT INTO blobs (key, blob, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()
	`
	if _, err := s.conn.ExecContext(ctx, query, key, blob); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// List returns every key with the prefix in ascending order.
func (s *PostgresStore) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT key FROM blobs WHERE key LIKE $1 || '%' ORDER BY key ASC", prefix)
	if err != nil {
		return nil, fmt.Errorf("listing %s*: %w", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// HealthCheck verifies the database connection.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}
