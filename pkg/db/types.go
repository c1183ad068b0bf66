package db

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement progress of a student account.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "Unpaid"
	StatusPartial PaymentStatus = "Partial"
	StatusPaid    PaymentStatus = "Paid"
)

// EntryKind distinguishes journal entries.
type EntryKind string

const (
	KindPayment EntryKind = "Payment"
	KindFood    EntryKind = "Food"
)

// Meal is one of the three daily meal slots.
type Meal string

const (
	Breakfast Meal = "breakfast"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

// Meals lists the meal slots in serving order.
var Meals = []Meal{Breakfast, Lunch, Dinner}

// Label returns the display name of the meal ("Breakfast").
func (m Meal) Label() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// PayerType identifies who a sale was made to.
type PayerType string

const (
	PayerHostel PayerType = "hostel"
	PayerStaff  PayerType = "staff"
	PayerGuest  PayerType = "guest"
)

// ModeAccount is the deferred payment mode charged to a student's debt.
const ModeAccount = "Account"

// Student is a hostel student with the current balance snapshot.
type Student struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Roll            string          `json:"roll"`
	Dept            string          `json:"dept"`
	Phone           string          `json:"phone"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MealAttendance records which meals a student was served on one date.
type MealAttendance struct {
	StudentID int64  `json:"student_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Breakfast bool   `json:"breakfast"`
	Lunch     bool   `json:"lunch"`
	Dinner    bool   `json:"dinner"`
}

// Served reports whether meal is flagged on this record.
func (m MealAttendance) Served(meal Meal) bool {
	switch meal {
	case Breakfast:
		return m.Breakfast
	case Lunch:
		return m.Lunch
	case Dinner:
		return m.Dinner
	}
	return false
}

// JournalEntry is a single ledger-affecting event.
type JournalEntry struct {
	ID          int64           `json:"id"`
	StudentID   int64           `json:"student_id"`
	Amount      decimal.Decimal `json:"amount"`
	DateTime    time.Time       `json:"date_time"`
	PaymentMode string          `json:"payment_mode"`
	Kind        EntryKind       `json:"kind"`
	Remarks     string          `json:"remarks"`
}

// SaleDetail is the structured description of what was sold to whom.
type SaleDetail struct {
	PayerType PayerType `json:"payer_type"`
	StudentID *int64    `json:"student_id,omitempty"`
	PayerName string    `json:"payer_name,omitempty"`
	Item      string    `json:"item"`
}

// Bill is the receipt of record for a sale.
type Bill struct {
	BillNo      int64           `json:"bill_no"`
	DateTime    time.Time       `json:"date_time"`
	OperatorID  int64           `json:"operator_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	Detail      SaleDetail      `json:"detail"`

	// StudentName is filled on lookup when the payer is a student.
	StudentName string `json:"student_name,omitempty"`
}
