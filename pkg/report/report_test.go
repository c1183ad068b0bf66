package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seed builds two days of activity:
//
//	2024-03-01  A lunch on Account 40, A breakfast Cash 20, guest Tea 15, staff lunch 40
//	2024-03-02  A dinner on Account 40, A pays 50, B breakfast on Account 20
func seed(t *testing.T) (*Reporter, *db.Connection, int64, int64) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(filepath.Join(t.TempDir(), "canteen.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	svc := ledger.NewService(conn, ledger.Config{
		Now:    func() time.Time { return now },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	a, err := svc.CreateStudent(ctx, ledger.StudentInput{Name: "Asha", Roll: "R-1"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.CreateStudent(ctx, ledger.StudentInput{Name: "Bala", Roll: "R-2"})
	if err != nil {
		t.Fatal(err)
	}

	sale := func(payer db.PayerType, id int64, meal, amount, mode string) {
		t.Helper()
		req := ledger.SaleRequest{PayerType: payer, MealType: meal, Amount: dec(amount), PaymentMode: mode}
		if id != 0 {
			req.StudentID = &id
		}
		if _, err := svc.RecordSale(ctx, req); err != nil {
			t.Fatalf("RecordSale(%s %s) failed: %v", payer, meal, err)
		}
	}

	sale(db.PayerHostel, a.ID, "lunch", "40", "Account")
	sale(db.PayerHostel, a.ID, "breakfast", "20", "Cash")
	sale(db.PayerGuest, 0, "Tea", "15", "Cash")
	sale(db.PayerStaff, 0, "lunch", "40", "UPI")

	now = time.Date(2024, 3, 2, 20, 0, 0, 0, time.Local)
	sale(db.PayerHostel, a.ID, "dinner", "40", "Account")
	if _, err := svc.ApplyPayment(ctx, ledger.PaymentRequest{StudentID: a.ID, Amount: dec("50")}); err != nil {
		t.Fatal(err)
	}
	sale(db.PayerHostel, b.ID, "bf", "20", "Account")

	return New(conn, nil), conn, a.ID, b.ID
}

func TestStudentStatement(t *testing.T) {
	ctx := context.Background()
	rep, _, a, _ := seed(t)

	tests := []struct {
		name      string
		from, to  string
		meals     MealCounts
		estimated string
		food      string
		paid      string
		txns      int
	}{
		{"all time", "", "", MealCounts{Breakfast: 1, Lunch: 1, Dinner: 1}, "100", "80", "50", 3},
		{"first day", "2024-03-01", "2024-03-01", MealCounts{Breakfast: 1, Lunch: 1}, "60", "40", "0", 1},
		{"second day open end", "2024-03-02", "", MealCounts{Dinner: 1}, "40", "40", "50", 2},
		{"empty range", "2024-04-01", "2024-04-30", MealCounts{}, "0", "0", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := rep.StudentStatement(ctx, a, tt.from, tt.to)
			if err != nil {
				t.Fatalf("StudentStatement failed: %v", err)
			}
			if st.Summary.MealCounts != tt.meals {
				t.Errorf("meals = %+v, expected %+v", st.Summary.MealCounts, tt.meals)
			}
			if !st.Summary.EstimatedCost.Equal(dec(tt.estimated)) {
				t.Errorf("estimated = %s, expected %s", st.Summary.EstimatedCost, tt.estimated)
			}
			if !st.Summary.FoodCharged.Equal(dec(tt.food)) || !st.Summary.PaymentsReceived.Equal(dec(tt.paid)) {
				t.Errorf("food/paid = %s/%s, expected %s/%s",
					st.Summary.FoodCharged, st.Summary.PaymentsReceived, tt.food, tt.paid)
			}
			if len(st.Transactions) != tt.txns {
				t.Errorf("transactions = %d, expected %d", len(st.Transactions), tt.txns)
			}
			if st.Meals == nil || st.Transactions == nil {
				t.Error("empty lists should be non-nil")
			}
		})
	}

	st, err := rep.StudentStatement(ctx, a, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if st.Transactions[0].Kind != db.KindPayment {
		t.Errorf("newest transaction = %+v, expected the payment", st.Transactions[0])
	}
	if st.Meals[0].Date != "2024-03-02" {
		t.Errorf("newest attendance = %s, expected 2024-03-02", st.Meals[0].Date)
	}
	if !st.Student.RemainingAmount.Equal(dec("30")) || st.Student.PaymentStatus != db.StatusPartial {
		t.Errorf("student balance = %s %s", st.Student.RemainingAmount, st.Student.PaymentStatus)
	}
}

func TestStudentStatementErrors(t *testing.T) {
	ctx := context.Background()
	rep, _, a, _ := seed(t)

	tests := []struct {
		name     string
		id       int64
		from, to string
		expected error
	}{
		{"unknown student", 99, "", "", ledger.ErrNotFound},
		{"bad date", a, "01/03/2024", "", ledger.ErrValidation},
		{"reversed range", a, "2024-03-02", "2024-03-01", ledger.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := rep.StudentStatement(ctx, tt.id, tt.from, tt.to); !errors.Is(err, tt.expected) {
				t.Errorf("StudentStatement error = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestDailyMeals(t *testing.T) {
	ctx := context.Background()
	rep, _, _, _ := seed(t)

	tests := []struct {
		date     string
		expected MealCounts
	}{
		{"2024-03-01", MealCounts{Breakfast: 1, Lunch: 2}},
		{"2024-03-02", MealCounts{Breakfast: 1, Dinner: 1}},
		{"2024-03-03", MealCounts{}},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := rep.DailyMeals(ctx, tt.date)
			if err != nil {
				t.Fatalf("DailyMeals failed: %v", err)
			}
			if *got != tt.expected {
				t.Errorf("DailyMeals(%s) = %+v, expected %+v", tt.date, *got, tt.expected)
			}
		})
	}

	if _, err := rep.DailyMeals(ctx, "yesterday"); !errors.Is(err, ledger.ErrValidation) {
		t.Errorf("DailyMeals(yesterday) error = %v, expected ErrValidation", err)
	}
}

func TestPeriodSummary(t *testing.T) {
	ctx := context.Background()
	rep, _, a, b := seed(t)

	rows, err := rep.PeriodSummary(ctx, "2024-03-02", "2024-03-02")
	if err != nil {
		t.Fatalf("PeriodSummary failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("PeriodSummary returned %d rows, expected 2", len(rows))
	}

	byID := map[int64]StudentPeriod{rows[0].StudentID: rows[0], rows[1].StudentID: rows[1]}

	ra := byID[a]
	if ra.Meals != (MealCounts{Dinner: 1}) || !ra.FoodCharged.Equal(dec("40")) || !ra.PaymentsReceived.Equal(dec("50")) {
		t.Errorf("student A = %+v", ra)
	}
	if !ra.Remaining.Equal(dec("30")) || ra.Status != db.StatusPartial {
		t.Errorf("student A balance = %s %s", ra.Remaining, ra.Status)
	}

	rb := byID[b]
	if rb.Meals != (MealCounts{Breakfast: 1}) || !rb.FoodCharged.Equal(dec("20")) || !rb.PaymentsReceived.IsZero() {
		t.Errorf("student B = %+v", rb)
	}
	if rb.Status != db.StatusUnpaid {
		t.Errorf("student B status = %s, expected Unpaid", rb.Status)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	rep, conn, _, _ := seed(t)

	stats, err := rep.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Students != 2 || stats.Bills != 6 || stats.JournalEntries != 4 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.LastBill != "2024-03-02 20:00:00" {
		t.Errorf("LastBill = %q", stats.LastBill)
	}
	if stats.LastExport != "" {
		t.Errorf("LastExport = %q, expected empty", stats.LastExport)
	}

	if err := conn.Store().SetMetadata(ctx, MetadataLastExport, "2024-03 2024-04-01 10:00:00"); err != nil {
		t.Fatal(err)
	}
	stats, err = rep.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.LastExport != "2024-03 2024-04-01 10:00:00" {
		t.Errorf("LastExport = %q", stats.LastExport)
	}
}
