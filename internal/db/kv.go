package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// KV exposes the database as a durable key-value medium. A Put is a single
// upsert, so each key is overwritten atomically from the caller's view.
type KV struct {
	db *DB
}

// NewKV creates a key-value store over an open database
func NewKV(database *DB) *KV {
	return &KV{db: database}
}

// Get returns the value stored under key; found is false when absent
func (s *KV) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	row := s.db.QueryRowContext(ctx, "SELECT v FROM kv WHERE k = ?", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

// Put writes value under key, replacing any prior content
func (s *KV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (k, v, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Delete removes a key; deleting an absent key is a no-op
func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE k = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}
