// Package api exposes the ledger operations and reports over JSON HTTP.
// Callers are expected to be authenticated before reaching these routes.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
)

// NewRouter builds the HTTP routes.
func NewRouter(svc *ledger.Service, rep *report.Reporter) http.Handler {
	students := NewStudentsHandler(svc, rep)
	bills := NewBillsHandler(svc)
	transactions := NewTransactionsHandler(svc)
	reports := NewReportsHandler(rep)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/students", func(r chi.Router) {
			r.Get("/", students.List)
			r.Post("/", students.Create)
			r.Get("/{id}", students.Get)
			r.Put("/{id}", students.Update)
			r.Delete("/{id}", students.Delete)
			r.Post("/{id}/reset", students.Reset)
			r.Post("/{id}/payments", students.Pay)
			r.Get("/{id}/report", students.Report)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Post("/", bills.Create)
			r.Get("/{billNo}", bills.Get)
		})

		r.Delete("/transactions/{id}", transactions.Reverse)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/meals", reports.Meals)
			r.Get("/summary", reports.Summary)
			r.Get("/stats", reports.Stats)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
