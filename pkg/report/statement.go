package report

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

// StatementSummary totals a statement.
type StatementSummary struct {
	MealCounts
	EstimatedCost    decimal.Decimal `json:"total_cost"`
	FoodCharged      decimal.Decimal `json:"food_charged"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
}

// StudentStatement is the history of one student over a date range.
type StudentStatement struct {
	Student      db.Student          `json:"student"`
	From         string              `json:"from,omitempty"`
	To           string              `json:"to,omitempty"`
	Meals        []db.MealAttendance `json:"meals"`
	Transactions []db.JournalEntry   `json:"transactions"`
	Summary      StatementSummary    `json:"summary"`
}

// StudentStatement builds the statement of a student between from and to
// (inclusive YYYY-MM-DD, empty for open bounds). Transactions are newest first.
func (r *Reporter) StudentStatement(ctx context.Context, studentID int64, from, to string) (*StudentStatement, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	st := r.conn.Store()
	student, err := st.GetStudent(ctx, studentID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: student %d", ledger.ErrNotFound, studentID)
	}
	if err != nil {
		return nil, internal("student statement", err)
	}

	meals, err := st.ListAttendance(ctx, studentID, from, to)
	if err != nil {
		return nil, internal("student statement", err)
	}

	entries, err := st.ListJournalEntries(ctx, db.JournalFilter{StudentID: studentID, From: from, To: to})
	if err != nil {
		return nil, internal("student statement", err)
	}
	slices.Reverse(entries)

	counts := countAttendance(meals)
	food, paid := totals(entries)

	if meals == nil {
		meals = []db.MealAttendance{}
	}
	if entries == nil {
		entries = []db.JournalEntry{}
	}

	return &StudentStatement{
		Student:      *student,
		From:         from,
		To:           to,
		Meals:        meals,
		Transactions: entries,
		Summary: StatementSummary{
			MealCounts:       counts,
			EstimatedCost:    r.estimate(counts),
			FoodCharged:      food,
			PaymentsReceived: paid,
		},
	}, nil
}
