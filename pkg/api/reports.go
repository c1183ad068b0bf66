package api

import (
	"net/http"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
)

// ReportsHandler handles read-only report endpoints.
type ReportsHandler struct {
	rep *report.Reporter
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(rep *report.Reporter) *ReportsHandler {
	return &ReportsHandler{rep: rep}
}

// Meals handles GET /api/reports/meals?date=.
func (h *ReportsHandler) Meals(w http.ResponseWriter, r *http.Request) {
	counts, err := h.rep.DailyMeals(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// Summary handles GET /api/reports/summary?start=&end=.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.rep.PeriodSummary(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": rows})
}

// Stats handles GET /api/reports/stats.
func (h *ReportsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.rep.Stats(r.Context())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
