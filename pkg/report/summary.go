package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// DailyMeals counts bills per meal slot for one date, all payer types
// included. Items that are not a meal are not counted.
func (r *Reporter) DailyMeals(ctx context.Context, date string) (*MealCounts, error) {
	if date == "" {
		date = time.Now().Format(time.DateOnly)
	}
	if err := checkRange(date, date); err != nil {
		return nil, err
	}

	bills, err := r.conn.Store().ListBills(ctx, date, date)
	if err != nil {
		return nil, internal("daily meals", err)
	}

	var counts MealCounts
	for _, b := range bills {
		if meal, ok := r.tariff.Normalize(b.Detail.Item); ok {
			counts.add(meal)
		}
	}
	return &counts, nil
}

// StudentPeriod is one student's activity over a period.
type StudentPeriod struct {
	StudentID        int64            `json:"student_id"`
	Name             string           `json:"name"`
	Roll             string           `json:"roll"`
	Meals            MealCounts       `json:"meals"`
	FoodCharged      decimal.Decimal  `json:"food_charged"`
	PaymentsReceived decimal.Decimal  `json:"payments_received"`
	Remaining        decimal.Decimal  `json:"remaining_amount"`
	Status           db.PaymentStatus `json:"payment_status"`
}

// PeriodSummary reports every student's meals and money between from and
// to (inclusive YYYY-MM-DD, empty for open bounds).
func (r *Reporter) PeriodSummary(ctx context.Context, from, to string) ([]StudentPeriod, error) {
	if err := checkRange(from, to); err != nil {
		return nil, err
	}

	st := r.conn.Store()
	students, err := st.ListStudents(ctx)
	if err != nil {
		return nil, internal("period summary", err)
	}

	entries, err := st.ListJournalEntries(ctx, db.JournalFilter{From: from, To: to})
	if err != nil {
		return nil, internal("period summary", err)
	}
	byStudent := make(map[int64][]db.JournalEntry)
	for _, e := range entries {
		byStudent[e.StudentID] = append(byStudent[e.StudentID], e)
	}

	rows := make([]StudentPeriod, 0, len(students))
	for _, s := range students {
		meals, err := st.ListAttendance(ctx, s.ID, from, to)
		if err != nil {
			return nil, internal("period summary", err)
		}
		food, paid := totals(byStudent[s.ID])

		rows = append(rows, StudentPeriod{
			StudentID:        s.ID,
			Name:             s.Name,
			Roll:             s.Roll,
			Meals:            countAttendance(meals),
			FoodCharged:      food,
			PaymentsReceived: paid,
			Remaining:        s.RemainingAmount,
			Status:           s.PaymentStatus,
		})
	}
	return rows, nil
}

// Stats summarises the store.
type Stats struct {
	Students       int    `json:"students"`
	Bills          int    `json:"bills"`
	JournalEntries int    `json:"journal_entries"`
	LastBill       string `json:"last_bill,omitempty"`
	LastExport     string `json:"last_export,omitempty"`
}

// Stats retrieves store statistics.
func (r *Reporter) Stats(ctx context.Context) (*Stats, error) {
	st := r.conn.Store()
	var stats Stats
	var err error

	if stats.Students, err = st.CountStudents(ctx); err != nil {
		return nil, internal("stats", err)
	}
	if stats.JournalEntries, err = st.CountJournalEntries(ctx); err != nil {
		return nil, internal("stats", err)
	}

	bills, err := st.GetBillStats(ctx)
	if err != nil {
		return nil, internal("stats", err)
	}
	stats.Bills = bills.Total
	if bills.LastBill.Valid {
		stats.LastBill = bills.LastBill.String
	}

	if stats.LastExport, err = st.GetMetadata(ctx, MetadataLastExport); err != nil {
		return nil, internal("stats", err)
	}
	return &stats, nil
}
