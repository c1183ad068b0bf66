// Package report builds read-only views over the ledger store. Nothing in
// this package writes balances.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/tariff"
)

// MetadataLastExport is the metadata key holding the last ledger export time.
const MetadataLastExport = "last_export"

// Reporter reads reports from one store.
type Reporter struct {
	conn   *db.Connection
	tariff *tariff.Tariff
}

// New creates a Reporter. A nil tariff uses tariff.Default().
func New(conn *db.Connection, t *tariff.Tariff) *Reporter {
	if t == nil {
		t = tariff.Default()
	}
	return &Reporter{conn: conn, tariff: t}
}

// MealCounts counts meals per slot.
type MealCounts struct {
	Breakfast int `json:"breakfast"`
	Lunch     int `json:"lunch"`
	Dinner    int `json:"dinner"`
}

func (c *MealCounts) add(meal db.Meal) {
	switch meal {
	case db.Breakfast:
		c.Breakfast++
	case db.Lunch:
		c.Lunch++
	case db.Dinner:
		c.Dinner++
	}
}

// Count returns the count of one slot.
func (c MealCounts) Count(meal db.Meal) int {
	switch meal {
	case db.Breakfast:
		return c.Breakfast
	case db.Lunch:
		return c.Lunch
	case db.Dinner:
		return c.Dinner
	}
	return 0
}

// countAttendance sums flags over records.
func countAttendance(records []db.MealAttendance) MealCounts {
	var c MealCounts
	for _, r := range records {
		for _, meal := range db.Meals {
			if r.Served(meal) {
				c.add(meal)
			}
		}
	}
	return c
}

// estimate prices counts with the tariff.
func (r *Reporter) estimate(c MealCounts) decimal.Decimal {
	total := decimal.Zero
	for _, meal := range db.Meals {
		total = total.Add(r.tariff.Price(meal).Mul(decimal.NewFromInt(int64(c.Count(meal)))))
	}
	return total
}

// totals sums Food and Payment amounts.
func totals(entries []db.JournalEntry) (food, paid decimal.Decimal) {
	food, paid = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Kind {
		case db.KindFood:
			food = food.Add(e.Amount)
		case db.KindPayment:
			paid = paid.Add(e.Amount)
		}
	}
	return food, paid
}

// checkRange validates optional YYYY-MM-DD bounds.
func checkRange(from, to string) error {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, d); err != nil {
			return fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ledger.ErrValidation, d)
		}
	}
	if from != "" && to != "" && from > to {
		return fmt.Errorf("%w: start date %s is after end date %s", ledger.ErrValidation, from, to)
	}
	return nil
}

func internal(op string, err error) error {
	if errors.Is(err, ledger.ErrValidation) || errors.Is(err, ledger.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ledger.ErrInternal, op, err)
}
