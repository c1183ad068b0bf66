package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const billColumns = `b.bill_no, b.date_time, b.operator_id, b.amount, b.payment_mode, b.detail, COALESCE(s.name, '')`

func scanBill(row interface{ Scan(...any) error }) (*Bill, error) {
	var b Bill
	var dateTime, detail string
	if err := row.Scan(
		&b.BillNo,
		&dateTime,
		&b.OperatorID,
		&b.Amount,
		&b.PaymentMode,
		&detail,
		&b.StudentName,
	); err != nil {
		return nil, err
	}

	t, err := parseDateTime(dateTime)
	if err != nil {
		return nil, err
	}
	b.DateTime = t

	if err := json.Unmarshal([]byte(detail), &b.Detail); err != nil {
		return nil, fmt.Errorf("invalid bill detail: %w", err)
	}
	return &b, nil
}

// InsertBill inserts a bill and returns the assigned bill number.
func (s *Store) InsertBill(ctx context.Context, b Bill) (int64, error) {
	detail, err := json.Marshal(b.Detail)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal bill detail: %w", err)
	}

	var studentID sql.NullInt64
	if b.Detail.StudentID != nil {
		studentID = sql.NullInt64{Int64: *b.Detail.StudentID, Valid: true}
	}

	query := `
		INSERT INTO bills (date_time, operator_id, amount, payment_mode, student_id, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.q.ExecContext(ctx, query,
		formatDateTime(b.DateTime),
		b.OperatorID,
		b.Amount,
		b.PaymentMode,
		studentID,
		string(detail),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert bill: %w", err)
	}
	return result.LastInsertId()
}

// GetBill retrieves a bill with the student's name when one is referenced.
func (s *Store) GetBill(ctx context.Context, billNo int64) (*Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills b
		LEFT JOIN students s ON b.student_id = s.id
		WHERE b.bill_no = ?
	`

	b, err := scanBill(s.q.QueryRowContext(ctx, query, billNo))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return b, nil
}

// ListBills retrieves bills dated between from and to (inclusive,
// YYYY-MM-DD, empty for open bounds) in bill number order.
func (s *Store) ListBills(ctx context.Context, from, to string) ([]Bill, error) {
	clause, args := dateRange("b.date_time", from, to)
	query := `
		SELECT ` + billColumns + `
		FROM bills b
		LEFT JOIN students s ON b.student_id = s.id
		WHERE 1 = 1` + clause + `
		ORDER BY b.bill_no ASC
	`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

// BillStats summarises the bills table.
type BillStats struct {
	Total    int
	LastBill sql.NullString
}

// GetBillStats retrieves the bill count and the latest bill timestamp.
func (s *Store) GetBillStats(ctx context.Context) (*BillStats, error) {
	var stats BillStats
	err := s.q.QueryRowContext(ctx, `SELECT COUNT(*), MAX(date_time) FROM bills`).Scan(&stats.Total, &stats.LastBill)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill stats: %w", err)
	}
	return &stats, nil
}
