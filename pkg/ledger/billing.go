package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// SaleRequest describes one sale at the counter.
type SaleRequest struct {
	PayerType   db.PayerType    `json:"payer_type" validate:"required,oneof=hostel staff guest"`
	StudentID   *int64          `json:"student_id,omitempty"`
	PayerName   string          `json:"payer_name,omitempty" validate:"max=100"`
	MealType    string          `json:"meal_type" validate:"required,max=50"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode" validate:"required,max=30"`
	OperatorID  int64           `json:"operator_id" validate:"gte=0"`
}

// BillReceipt is the result of a recorded sale.
type BillReceipt struct {
	BillNo      int64           `json:"bill_no"`
	DateTime    time.Time       `json:"date_time"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	Detail      db.SaleDetail   `json:"detail"`

	// Set for hostel sales.
	Meal db.Meal `json:"meal,omitempty"`
	// Set for Account sales.
	JournalEntryID int64    `json:"journal_entry_id,omitempty"`
	Balance        *Balance `json:"balance,omitempty"`
}

// RecordSale records a Bill for every sale. For hostel students it also
// marks today's attendance and, when paid on Account, raises the debt and
// appends a Food journal entry. All effects commit together.
func (s *Service) RecordSale(ctx context.Context, req SaleRequest) (*BillReceipt, error) {
	req.PayerType = db.PayerType(strings.ToLower(strings.TrimSpace(string(req.PayerType))))
	req.MealType = strings.TrimSpace(req.MealType)
	req.PaymentMode = strings.TrimSpace(req.PaymentMode)

	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if !req.Amount.IsPositive() {
		return nil, invalidf("amount must be positive, got %s", req.Amount)
	}

	onAccount := strings.EqualFold(req.PaymentMode, db.ModeAccount)
	if onAccount {
		req.PaymentMode = db.ModeAccount
	}

	detail := db.SaleDetail{
		PayerType: req.PayerType,
		PayerName: strings.TrimSpace(req.PayerName),
		Item:      req.MealType,
	}

	var meal db.Meal
	switch req.PayerType {
	case db.PayerHostel:
		if req.StudentID == nil || *req.StudentID <= 0 {
			return nil, invalidf("hostel sale requires a student id")
		}
		var ok bool
		meal, ok = s.tariff.Normalize(req.MealType)
		if !ok {
			return nil, invalidf("unrecognised meal type %q", req.MealType)
		}
		id := *req.StudentID
		detail.StudentID = &id
		detail.Item = meal.Label()
	default:
		if onAccount {
			return nil, invalidf("payment mode %s requires a hostel student", db.ModeAccount)
		}
		req.StudentID = nil
		if detail.PayerName == "" && req.PayerType == db.PayerGuest {
			detail.PayerName = "Guest"
		}
	}

	now := s.clock()
	receipt := &BillReceipt{
		DateTime:    now,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Detail:      detail,
		Meal:        meal,
	}

	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		var student *db.Student
		if req.StudentID != nil {
			var err error
			student, err = st.GetStudent(ctx, *req.StudentID)
			if errors.Is(err, db.ErrNotFound) {
				return notFoundf("student %d", *req.StudentID)
			}
			if err != nil {
				return err
			}
			if detail.PayerName == "" {
				receipt.Detail.PayerName = student.Name
			}
		}

		billNo, err := st.InsertBill(ctx, db.Bill{
			DateTime:    now,
			OperatorID:  req.OperatorID,
			Amount:      req.Amount,
			PaymentMode: req.PaymentMode,
			Detail:      receipt.Detail,
		})
		if err != nil {
			return err
		}
		receipt.BillNo = billNo

		if student == nil {
			return nil
		}

		date := now.Format(time.DateOnly)
		if s.rejectDuplicateMeals {
			rec, err := st.GetAttendance(ctx, student.ID, date)
			if err != nil && !errors.Is(err, db.ErrNotFound) {
				return err
			}
			if rec != nil && rec.Served(meal) {
				return conflictf("%s already served to student %d on %s", meal, student.ID, date)
			}
		}
		if err := st.MarkMeal(ctx, student.ID, date, meal); err != nil {
			return err
		}

		if !onAccount {
			return nil
		}

		adj, err := effect(db.KindFood, req.Amount)
		if err != nil {
			return err
		}
		balance := adj.apply(student)
		if err := st.UpdateBalance(ctx, student.ID, balance.Remaining, balance.Paid, balance.Status); err != nil {
			return err
		}

		entryID, err := st.InsertJournalEntry(ctx, db.JournalEntry{
			StudentID:   student.ID,
			Amount:      req.Amount,
			DateTime:    now,
			PaymentMode: db.ModeAccount,
			Kind:        db.KindFood,
			Remarks:     fmt.Sprintf("%s (Bill #%d)", meal.Label(), billNo),
		})
		if err != nil {
			return err
		}
		receipt.JournalEntryID = entryID
		receipt.Balance = &balance
		return nil
	})
	if err != nil {
		return nil, classify("record sale", err)
	}

	s.logger.Info("sale recorded",
		"bill_no", receipt.BillNo,
		"payer_type", req.PayerType,
		"item", receipt.Detail.Item,
		"amount", req.Amount.String(),
		"payment_mode", req.PaymentMode,
	)
	if receipt.Balance != nil {
		s.logger.Info("account charged",
			"student_id", receipt.Balance.StudentID,
			"entry_id", receipt.JournalEntryID,
			"remaining", receipt.Balance.Remaining.String(),
			"status", receipt.Balance.Status,
		)
	}

	return receipt, nil
}
