package db

import (
	"context"
	"database/sql"
	"fmt"
)

func mealColumn(meal Meal) (string, error) {
	switch meal {
	case Breakfast, Lunch, Dinner:
		return string(meal), nil
	}
	return "", fmt.Errorf("unknown meal %q", meal)
}

// MarkMeal sets the flag for meal on the (student, date) record,
// creating the record on first use.
func (s *Store) MarkMeal(ctx context.Context, studentID int64, date string, meal Meal) error {
	col, err := mealColumn(meal)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO meal_attendance (student_id, date, %[1]s)
		VALUES (?, ?, 1)
		ON CONFLICT(student_id, date) DO UPDATE SET %[1]s = 1
	`, col)

	if _, err := s.q.ExecContext(ctx, query, studentID, date); err != nil {
		return fmt.Errorf("failed to mark meal: %w", err)
	}
	return nil
}

// GetAttendance retrieves the record for one student and date.
func (s *Store) GetAttendance(ctx context.Context, studentID int64, date string) (*MealAttendance, error) {
	var m MealAttendance
	err := s.q.QueryRowContext(ctx, `
		SELECT student_id, date, breakfast, lunch, dinner
		FROM meal_attendance
		WHERE student_id = ? AND date = ?
	`, studentID, date).Scan(&m.StudentID, &m.Date, &m.Breakfast, &m.Lunch, &m.Dinner)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return &m, nil
}

// ListAttendance retrieves a student's records between from and to
// (inclusive, YYYY-MM-DD, empty for open bounds), newest first.
func (s *Store) ListAttendance(ctx context.Context, studentID int64, from, to string) ([]MealAttendance, error) {
	clause, args := dateRange("date", from, to)
	query := `
		SELECT student_id, date, breakfast, lunch, dinner
		FROM meal_attendance
		WHERE student_id = ?` + clause + `
		ORDER BY date DESC
	`

	rows, err := s.q.QueryContext(ctx, query, append([]any{studentID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []MealAttendance
	for rows.Next() {
		var m MealAttendance
		if err := rows.Scan(&m.StudentID, &m.Date, &m.Breakfast, &m.Lunch, &m.Dinner); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// DeleteAttendance removes every attendance record of a student.
func (s *Store) DeleteAttendance(ctx context.Context, studentID int64) (int64, error) {
	result, err := s.q.ExecContext(ctx, `DELETE FROM meal_attendance WHERE student_id = ?`, studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return result.RowsAffected()
}
