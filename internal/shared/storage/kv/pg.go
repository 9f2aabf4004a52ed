package kv

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGStore implements Store on Postgres.
type PGStore struct {
	DB *sql.DB
}

// Set upserts the value for key.
func (s *PGStore) Set(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	_, err := s.DB.ExecContext(ctx, query, key, value, time.Now().UTC())
	return err
}

// Get returns the value for key or ErrNotFound.
func (s *PGStore) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`
	var value string
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// List returns all entries whose key starts with prefix, ordered by key.
func (s *PGStore) List(ctx context.Context, prefix string) ([]Entry, error) {
	const query = `SELECT key, value FROM kv_entries WHERE key LIKE $1 || '%' ORDER BY key`
	rows, err := s.DB.QueryContext(ctx, query, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Key, &entry.Value); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ Store = (*PGStore)(nil)
