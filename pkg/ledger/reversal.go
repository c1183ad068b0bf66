package ledger

import (
	"context"
	"errors"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// ReverseEntry undoes the ledger effect of one journal entry and deletes it.
// Bills and attendance are left as they are: the sale and the meal still
// happened.
func (s *Service) ReverseEntry(ctx context.Context, entryID int64) (*Balance, error) {
	if entryID <= 0 {
		return nil, invalidf("journal entry id must be positive, got %d", entryID)
	}

	var balance Balance
	var reversed *db.JournalEntry

	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		entry, err := st.GetJournalEntry(ctx, entryID)
		if errors.Is(err, db.ErrNotFound) {
			return notFoundf("journal entry %d", entryID)
		}
		if err != nil {
			return err
		}

		adj, err := effect(entry.Kind, entry.Amount)
		if err != nil {
			return err
		}

		student, err := st.GetStudent(ctx, entry.StudentID)
		if errors.Is(err, db.ErrNotFound) {
			return notFoundf("student %d", entry.StudentID)
		}
		if err != nil {
			return err
		}

		balance = adj.inverse().apply(student)
		if err := st.UpdateBalance(ctx, student.ID, balance.Remaining, balance.Paid, balance.Status); err != nil {
			return err
		}
		if err := st.DeleteJournalEntry(ctx, entry.ID); err != nil {
			return err
		}
		reversed = entry
		return nil
	})
	if err != nil {
		return nil, classify("reverse entry", err)
	}

	s.logger.Info("journal entry reversed",
		"entry_id", reversed.ID,
		"kind", reversed.Kind,
		"student_id", reversed.StudentID,
		"amount", reversed.Amount.String(),
		"remaining", balance.Remaining.String(),
		"status", balance.Status,
	)

	return &balance, nil
}
