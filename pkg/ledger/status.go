package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// DeriveStatus computes payment_status from the balance fields. It is the
// only place the status is decided; every balance write goes through it.
// An untouched account (nothing owed, nothing paid) is Unpaid.
func DeriveStatus(remaining, paid decimal.Decimal) db.PaymentStatus {
	switch {
	case remaining.IsZero() && paid.IsZero():
		return db.StatusUnpaid
	case !remaining.IsPositive():
		return db.StatusPaid
	case paid.IsPositive():
		return db.StatusPartial
	default:
		return db.StatusUnpaid
	}
}

// Balance is the ledger state of one student after an operation.
type Balance struct {
	StudentID int64            `json:"student_id"`
	Remaining decimal.Decimal  `json:"remaining_amount"`
	Paid      decimal.Decimal  `json:"amount_paid"`
	Status    db.PaymentStatus `json:"payment_status"`
}

// adjustment is the change one journal entry applies to a balance.
type adjustment struct {
	remaining decimal.Decimal
	paid      decimal.Decimal
}

// effect returns the balance change caused by an entry of kind.
func effect(kind db.EntryKind, amount decimal.Decimal) (adjustment, error) {
	switch kind {
	case db.KindFood:
		return adjustment{remaining: amount, paid: decimal.Zero}, nil
	case db.KindPayment:
		return adjustment{remaining: amount.Neg(), paid: amount}, nil
	}
	return adjustment{}, invalidf("unknown journal entry kind %q", kind)
}

func (a adjustment) inverse() adjustment {
	return adjustment{remaining: a.remaining.Neg(), paid: a.paid.Neg()}
}

// apply returns the balance of st after a, with the status rederived.
func (a adjustment) apply(st *db.Student) Balance {
	remaining := st.RemainingAmount.Add(a.remaining)
	paid := st.AmountPaid.Add(a.paid)
	return Balance{
		StudentID: st.ID,
		Remaining: remaining,
		Paid:      paid,
		Status:    DeriveStatus(remaining, paid),
	}
}

func (b Balance) String() string {
	return fmt.Sprintf("remaining=%s paid=%s status=%s", b.Remaining, b.Paid, b.Status)
}
