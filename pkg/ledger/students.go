package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
)

// StudentInput holds the editable identity fields of a student.
type StudentInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Roll  string `json:"roll" validate:"max=50"`
	Dept  string `json:"dept" validate:"max=100"`
	Phone string `json:"phone" validate:"max=20"`
}

func (in *StudentInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Roll = strings.TrimSpace(in.Roll)
	in.Dept = strings.TrimSpace(in.Dept)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Dept == "" {
		in.Dept = "General"
	}
}

// CreateStudent adds a student with a zero balance under the smallest
// unused id.
func (s *Service) CreateStudent(ctx context.Context, in StudentInput) (*db.Student, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}

	now := s.clock()
	var created db.Student

	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		ids, err := st.StudentIDs(ctx)
		if err != nil {
			return err
		}
		id := NextStudentID(ids)

		roll := in.Roll
		if roll == "" {
			roll = fmt.Sprintf("R-%d-%d", now.Unix(), id)
		}

		created = db.Student{
			ID:              id,
			Name:            in.Name,
			Roll:            roll,
			Dept:            in.Dept,
			Phone:           in.Phone,
			PaymentStatus:   DeriveStatus(decimal.Zero, decimal.Zero),
			AmountPaid:      decimal.Zero,
			RemainingAmount: decimal.Zero,
			CreatedAt:       now,
		}
		if err := st.InsertStudent(ctx, created); err != nil {
			if db.IsUniqueViolation(err) {
				return conflictf("roll %q is already registered", roll)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classify("create student", err)
	}

	s.logger.Info("student created", "student_id", created.ID, "roll", created.Roll)
	return &created, nil
}

// UpdateStudent replaces the identity fields of a student. Balance fields
// are only changed by billing, settlement and reversal.
func (s *Service) UpdateStudent(ctx context.Context, id int64, in StudentInput) (*db.Student, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, fromValidator(err)
	}

	var updated *db.Student
	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		current, err := st.GetStudent(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return notFoundf("student %d", id)
		}
		if err != nil {
			return err
		}

		current.Name = in.Name
		current.Dept = in.Dept
		current.Phone = in.Phone
		if in.Roll != "" {
			current.Roll = in.Roll
		}

		if err := st.UpdateStudentProfile(ctx, *current); err != nil {
			if db.IsUniqueViolation(err) {
				return conflictf("roll %q is already registered", current.Roll)
			}
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, classify("update student", err)
	}

	s.logger.Info("student updated", "student_id", id)
	return updated, nil
}

// DeleteStudent removes a student together with its attendance, journal
// entries and bills. The id becomes free for reuse.
func (s *Service) DeleteStudent(ctx context.Context, id int64) error {
	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		err := st.DeleteStudent(ctx, id)
		if errors.Is(err, db.ErrNotFound) {
			return notFoundf("student %d", id)
		}
		return err
	})
	if err != nil {
		return classify("delete student", err)
	}

	s.logger.Info("student deleted", "student_id", id)
	return nil
}

// ResetStudent clears a student's attendance and journal history and
// zeroes the balance. Bills are kept.
func (s *Service) ResetStudent(ctx context.Context, id int64) (*Balance, error) {
	var balance Balance
	var meals, entries int64

	err := s.conn.Transaction(ctx, func(st *db.Store) error {
		if _, err := st.GetStudent(ctx, id); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return notFoundf("student %d", id)
			}
			return err
		}

		var err error
		if meals, err = st.DeleteAttendance(ctx, id); err != nil {
			return err
		}
		if entries, err = st.DeleteJournalEntries(ctx, id); err != nil {
			return err
		}

		balance = Balance{
			StudentID: id,
			Remaining: decimal.Zero,
			Paid:      decimal.Zero,
			Status:    DeriveStatus(decimal.Zero, decimal.Zero),
		}
		return st.UpdateBalance(ctx, id, balance.Remaining, balance.Paid, balance.Status)
	})
	if err != nil {
		return nil, classify("reset student", err)
	}

	s.logger.Info("student history reset",
		"student_id", id,
		"attendance_removed", meals,
		"entries_removed", entries,
	)
	return &balance, nil
}

// GetStudent retrieves one student.
func (s *Service) GetStudent(ctx context.Context, id int64) (*db.Student, error) {
	st, err := s.conn.Store().GetStudent(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, notFoundf("student %d", id)
	}
	if err != nil {
		return nil, classify("get student", err)
	}
	return st, nil
}

// ListStudents retrieves all students ordered by id.
func (s *Service) ListStudents(ctx context.Context) ([]db.Student, error) {
	students, err := s.conn.Store().ListStudents(ctx)
	if err != nil {
		return nil, classify("list students", err)
	}
	return students, nil
}

// GetBill retrieves a bill by number.
func (s *Service) GetBill(ctx context.Context, billNo int64) (*db.Bill, error) {
	bill, err := s.conn.Store().GetBill(ctx, billNo)
	if errors.Is(err, db.ErrNotFound) {
		return nil, notFoundf("bill %d", billNo)
	}
	if err != nil {
		return nil, classify("get bill", err)
	}
	return bill, nil
}
