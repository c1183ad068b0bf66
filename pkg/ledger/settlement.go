package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// PaymentRequest describes money received against a student's account.
type PaymentRequest struct {
	StudentID   int64           `json:"student_id" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode" validate:"max=30"`
	Remarks     string          `json:"remarks" validate:"max=200"`
}

// PaymentResult is the outcome of ApplyPayment.
type PaymentResult struct {
	Balance
	JournalEntryID int64 `json:"journal_entry_id"`
}

// ApplyPayment lowers the student's debt by the amount, credits it to
// amount_paid and appends a Payment journal entry.
func (s *Service) ApplyPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	req.PaymentMode = strings.TrimSpace(req.PaymentMode)
	if req.PaymentMode == "" {
		req.PaymentMode = "Cash"
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fromValidator(err)
	}
	if !req.Amount.IsPositive() {
		return nil, invalidf("amount must be positive, got %s", req.Amount)
	}
	if strings.EqualFold(req.PaymentMode, db.ModeAccount) {
		return nil, invalidf("payment mode %s cannot settle a balance", db.ModeAccount)
	}
	if req.Remarks == "" {
		req.Remarks = "Fee Payment"
	}

	now := s.clock()
	var result PaymentResult

	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		student, err := st.GetStudent(ctx, req.StudentID)
		if errors.Is(err, db.ErrNotFound) {
			return notFoundf("student %d", req.StudentID)
		}
		if err != nil {
			return err
		}

		adj, err := effect(db.KindPayment, req.Amount)
		if err != nil {
			return err
		}
		result.Balance = adj.apply(student)

		if err := st.UpdateBalance(ctx, student.ID, result.Remaining, result.Paid, result.Status); err != nil {
			return err
		}

		result.JournalEntryID, err = st.InsertJournalEntry(ctx, db.JournalEntry{
			StudentID:   student.ID,
			Amount:      req.Amount,
			DateTime:    now,
			PaymentMode: req.PaymentMode,
			Kind:        db.KindPayment,
			Remarks:     req.Remarks,
		})
		return err
	})
	if err != nil {
		return nil, classify("apply payment", err)
	}

	s.logger.Info("payment applied",
		"student_id", req.StudentID,
		"amount", req.Amount.String(),
		"payment_mode", req.PaymentMode,
		"entry_id", result.JournalEntryID,
		"remaining", result.Remaining.String(),
		"status", result.Status,
	)

	return &result, nil
}
