// Package ledger implements the canteen account engines: billing a sale,
// settling a payment, reversing a journal entry, and student administration.
// Every mutating operation runs as a single store transaction.
package ledger

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/tariff"
)

// Config represents the configuration for Service.
type Config struct {
	// Tariff resolves meal names. Defaults to tariff.Default().
	Tariff *tariff.Tariff
	// RejectDuplicateMeals refuses to serve a meal already flagged for
	// the student on the same date.
	RejectDuplicateMeals bool
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Service runs the ledger operations against one store.
type Service struct {
	conn     *db.Connection
	tariff   *tariff.Tariff
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger

	rejectDuplicateMeals bool
}

// NewService creates a new Service.
func NewService(conn *db.Connection, config Config) *Service {
	t := config.Tariff
	if t == nil {
		t = tariff.Default()
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		conn:                 conn,
		tariff:               t,
		validate:             validator.New(),
		now:                  now,
		logger:               logger,
		rejectDuplicateMeals: config.RejectDuplicateMeals,
	}
}

// Tariff returns the tariff the service normalises meals with.
func (s *Service) Tariff() *tariff.Tariff {
	return s.tariff
}

// clock returns the current time truncated to the stored precision.
func (s *Service) clock() time.Time {
	return s.now().Truncate(time.Second)
}
