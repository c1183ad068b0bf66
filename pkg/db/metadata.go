package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// GetMetadata retrieves a metadata value. Missing keys yield "".
func (s *Store) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	err := s.q.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}
	return value, nil
}

// SetMetadata sets a metadata value.
func (s *Store) SetMetadata(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO metadata (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := s.q.ExecContext(ctx, query, key, value, formatDateTime(time.Now())); err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}
	return nil
}
