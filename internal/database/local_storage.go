package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// LocalStorage keeps settings and session tokens in Postgres, one namespace per
// installation, so several hosts can share them.
type LocalStorage struct {
	db        *DB
	namespace string
}

func NewLocalStorage(db *DB, namespace string) *LocalStorage {
	return &LocalStorage{db: db, namespace: namespace}
}

func (s *LocalStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT value FROM local_storage WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *LocalStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO local_storage (namespace, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) Remove(ctx context.Context, key string) error {
	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM local_storage WHERE namespace = $1 AND key = $2
	`, s.namespace, key)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the namespace's keys in sorted order.
func (s *LocalStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT key FROM local_storage WHERE namespace = $1 ORDER BY key
	`, s.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
