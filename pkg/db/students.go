package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

const studentColumns = `id, name, roll, dept, phone, payment_status, amount_paid, remaining_amount, created_at`

func scanStudent(row interface{ Scan(...any) error }) (*Student, error) {
	var s Student
	var status, createdAt string
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Roll,
		&s.Dept,
		&s.Phone,
		&status,
		&s.AmountPaid,
		&s.RemainingAmount,
		&createdAt,
	); err != nil {
		return nil, err
	}
	s.PaymentStatus = PaymentStatus(status)

	t, err := parseDateTime(createdAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = t
	return &s, nil
}

// StudentIDs returns every student id in ascending order.
func (s *Store) StudentIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id FROM students ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list student IDs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan student ID: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertStudent inserts a student with an explicit id.
func (s *Store) InsertStudent(ctx context.Context, st Student) error {
	query := `
		INSERT INTO students (` + studentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.q.ExecContext(ctx, query,
		st.ID,
		st.Name,
		st.Roll,
		st.Dept,
		st.Phone,
		string(st.PaymentStatus),
		st.AmountPaid,
		st.RemainingAmount,
		formatDateTime(st.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert student: %w", err)
	}
	return nil
}

// GetStudent retrieves a student by id.
func (s *Store) GetStudent(ctx context.Context, id int64) (*Student, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id)

	st, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return st, nil
}

// ListStudents retrieves all students ordered by id.
func (s *Store) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, *st)
	}
	return students, rows.Err()
}

// UpdateStudentProfile updates identity fields only.
func (s *Store) UpdateStudentProfile(ctx context.Context, st Student) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE students SET name = ?, roll = ?, dept = ?, phone = ? WHERE id = ?`,
		st.Name, st.Roll, st.Dept, st.Phone, st.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	return affected(result)
}

// UpdateBalance writes the balance snapshot of a student.
func (s *Store) UpdateBalance(ctx context.Context, id int64, remaining, paid decimal.Decimal, status PaymentStatus) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE students SET remaining_amount = ?, amount_paid = ?, payment_status = ? WHERE id = ?`,
		remaining, paid, string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	return affected(result)
}

// DeleteStudent deletes a student. Attendance, journal entries and bills
// referencing the student are removed by ON DELETE CASCADE.
func (s *Store) DeleteStudent(ctx context.Context, id int64) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return affected(result)
}

// CountStudents returns the number of students.
func (s *Store) CountStudents(ctx context.Context) (int, error) {
	var n int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return n, nil
}
