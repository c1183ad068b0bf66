package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Querier is implemented by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store exposes the repositories over a connection or a transaction.
type Store struct {
	q Querier
}

// NewStore creates a Store over q.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

func formatDateTime(t time.Time) string {
	return t.Format(time.DateTime)
}

func parseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateTime, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// affected converts a result into ErrNotFound when no row was touched.
func affected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// dateRange builds a WHERE fragment over a YYYY-MM-DD prefix of column.
// Empty bounds are open.
func dateRange(column, from, to string) (string, []any) {
	var clause string
	var args []any
	if from != "" {
		clause += fmt.Sprintf(" AND substr(%s, 1, 10) >= ?", column)
		args = append(args, from)
	}
	if to != "" {
		clause += fmt.Sprintf(" AND substr(%s, 1, 10) <= ?", column)
		args = append(args, to)
	}
	return clause, args
}
