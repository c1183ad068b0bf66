package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

func TestCreateStudentReusesFreedIDs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, name := range []string{"A", "B", "C", "D"} {
		mustCreateStudent(t, svc, name)
	}
	if err := svc.DeleteStudent(ctx, 3); err != nil {
		t.Fatalf("DeleteStudent(3) failed: %v", err)
	}

	for _, expected := range []int64{3, 5} {
		st := mustCreateStudent(t, svc, "New")
		if st.ID != expected {
			t.Errorf("CreateStudent id = %d, expected %d", st.ID, expected)
		}
	}
}

func TestCreateStudentDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	st, err := svc.CreateStudent(context.Background(), StudentInput{Name: "  Priya  "})
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if st.Name != "Priya" || st.Dept != "General" {
		t.Errorf("student = %+v", st)
	}
	if !strings.HasPrefix(st.Roll, "R-") {
		t.Errorf("default roll = %q", st.Roll)
	}
	if st.PaymentStatus != db.StatusUnpaid || !st.RemainingAmount.IsZero() || !st.AmountPaid.IsZero() {
		t.Errorf("new student balance = %+v", st)
	}
	if !st.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, expected %v", st.CreatedAt, testNow)
	}
}

func TestCreateStudentErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CreateStudent(ctx, StudentInput{Name: "A", Roll: "R-1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		in       StudentInput
		expected error
	}{
		{"missing name", StudentInput{Roll: "R-2"}, ErrValidation},
		{"blank name", StudentInput{Name: "   "}, ErrValidation},
		{"name too long", StudentInput{Name: strings.Repeat("x", 101)}, ErrValidation},
		{"duplicate roll", StudentInput{Name: "B", Roll: "R-1"}, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateStudent(ctx, tt.in); !errors.Is(err, tt.expected) {
				t.Errorf("CreateStudent error = %v, expected %v", err, tt.expected)
			}
		})
	}

	students, err := svc.ListStudents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != 1 {
		t.Errorf("ListStudents returned %d students, expected 1", len(students))
	}
}

func TestUpdateStudent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	a, err := svc.CreateStudent(ctx, StudentInput{Name: "A", Roll: "R-1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateStudent(ctx, StudentInput{Name: "B", Roll: "R-2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordSale(ctx, hostelSale(a.ID, "lunch", "40", "Account")); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStudent(ctx, a.ID, StudentInput{Name: "Anil", Dept: "ECE", Phone: "98450"})
	if err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}
	if updated.Name != "Anil" || updated.Dept != "ECE" || updated.Phone != "98450" || updated.Roll != "R-1" {
		t.Errorf("updated = %+v", updated)
	}
	assertBalance(t, svc, a.ID, "40", "0", db.StatusUnpaid)

	if _, err := svc.UpdateStudent(ctx, a.ID, StudentInput{Name: "Anil", Roll: "R-2"}); !errors.Is(err, ErrConflict) {
		t.Errorf("UpdateStudent duplicate roll error = %v, expected ErrConflict", err)
	}
	if _, err := svc.UpdateStudent(ctx, 99, StudentInput{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateStudent(99) error = %v, expected ErrNotFound", err)
	}
	if err := svc.DeleteStudent(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteStudent(99) error = %v, expected ErrNotFound", err)
	}
}

func TestResetStudent(t *testing.T) {
	ctx := context.Background()
	svc, conn := newTestService(t)
	st := mustCreateStudent(t, svc, "Reset")

	if _, err := svc.RecordSale(ctx, hostelSale(st.ID, "lunch", "40", "Account")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ApplyPayment(ctx, PaymentRequest{StudentID: st.ID, Amount: dec("10")}); err != nil {
		t.Fatal(err)
	}

	balance, err := svc.ResetStudent(ctx, st.ID)
	if err != nil {
		t.Fatalf("ResetStudent failed: %v", err)
	}
	if !balance.Remaining.IsZero() || !balance.Paid.IsZero() || balance.Status != db.StatusUnpaid {
		t.Errorf("reset balance = %s", balance)
	}
	assertBalance(t, svc, st.ID, "0", "0", db.StatusUnpaid)

	if n := count(t, conn, `SELECT COUNT(*) FROM journal_entries WHERE student_id = ?`, st.ID); n != 0 {
		t.Errorf("journal entries = %d after reset", n)
	}
	if _, err := conn.Store().GetAttendance(ctx, st.ID, testNow.Format(time.DateOnly)); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("attendance after reset error = %v, expected ErrNotFound", err)
	}
	if n := count(t, conn, `SELECT COUNT(*) FROM bills`); n != 1 {
		t.Errorf("bills = %d after reset, expected 1", n)
	}

	if _, err := svc.ResetStudent(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("ResetStudent(99) error = %v, expected ErrNotFound", err)
	}
}

func TestGetBillNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetBill(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBill(5) error = %v, expected ErrNotFound", err)
	}
}
