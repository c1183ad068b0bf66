package db

import (
	"context"
	"database/sql"
	"fmt"
)

const journalColumns = `id, student_id, amount, date_time, payment_mode, kind, remarks`

func scanJournalEntry(row interface{ Scan(...any) error }) (*JournalEntry, error) {
	var e JournalEntry
	var dateTime, kind string
	if err := row.Scan(
		&e.ID,
		&e.StudentID,
		&e.Amount,
		&dateTime,
		&e.PaymentMode,
		&kind,
		&e.Remarks,
	); err != nil {
		return nil, err
	}
	e.Kind = EntryKind(kind)

	t, err := parseDateTime(dateTime)
	if err != nil {
		return nil, err
	}
	e.DateTime = t
	return &e, nil
}

// InsertJournalEntry appends an entry and returns its id.
func (s *Store) InsertJournalEntry(ctx context.Context, e JournalEntry) (int64, error) {
	query := `
		INSERT INTO journal_entries (student_id, amount, date_time, payment_mode, kind, remarks)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.q.ExecContext(ctx, query,
		e.StudentID,
		e.Amount,
		formatDateTime(e.DateTime),
		e.PaymentMode,
		string(e.Kind),
		e.Remarks,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal entry: %w", err)
	}
	return result.LastInsertId()
}

// GetJournalEntry retrieves a journal entry by id.
func (s *Store) GetJournalEntry(ctx context.Context, id int64) (*JournalEntry, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+journalColumns+` FROM journal_entries WHERE id = ?`, id)

	e, err := scanJournalEntry(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return e, nil
}

// DeleteJournalEntry removes a journal entry.
func (s *Store) DeleteJournalEntry(ctx context.Context, id int64) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return affected(result)
}

// JournalFilter narrows ListJournalEntries. Zero values match everything.
type JournalFilter struct {
	StudentID int64
	From      string // YYYY-MM-DD, inclusive
	To        string // YYYY-MM-DD, inclusive
}

// ListJournalEntries retrieves entries matching f in insertion order.
func (s *Store) ListJournalEntries(ctx context.Context, f JournalFilter) ([]JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE 1 = 1`
	var args []any
	if f.StudentID != 0 {
		query += ` AND student_id = ?`
		args = append(args, f.StudentID)
	}
	clause, rangeArgs := dateRange("date_time", f.From, f.To)
	query += clause + ` ORDER BY id ASC`
	args = append(args, rangeArgs...)

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteJournalEntries removes every journal entry of a student.
func (s *Store) DeleteJournalEntries(ctx context.Context, studentID int64) (int64, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM journal_entries WHERE student_id = ?`, studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries: %w", err)
	}
	return result.RowsAffected()
}

// CountJournalEntries returns the number of journal entries.
func (s *Store) CountJournalEntries(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal entries: %w", err)
	}
	return n, nil
}
