package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
)

// StudentsHandler handles student and account endpoints.
type StudentsHandler struct {
	svc *ledger.Service
	rep *report.Reporter
}

// NewStudentsHandler creates a new StudentsHandler.
func NewStudentsHandler(svc *ledger.Service, rep *report.Reporter) *StudentsHandler {
	return &StudentsHandler{svc: svc, rep: rep}
}

// List handles GET /api/students.
func (h *StudentsHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.ListStudents(r.Context())
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if students == nil {
		students = []db.Student{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": students})
}

// Create handles POST /api/students.
func (h *StudentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ledger.StudentInput
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.CreateStudent(r.Context(), req)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"student": student})
}

// Get handles GET /api/students/{id}.
func (h *StudentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	student, err := h.svc.GetStudent(r.Context(), id)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"student": student})
}

// Update handles PUT /api/students/{id}.
func (h *StudentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	var req ledger.StudentInput
	if !decode(w, r, &req) {
		return
	}

	student, err := h.svc.UpdateStudent(r.Context(), id, req)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"student": student})
}

// Delete handles DELETE /api/students/{id}.
func (h *StudentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	if err := h.svc.DeleteStudent(r.Context(), id); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /api/students/{id}/reset.
func (h *StudentsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	balance, err := h.svc.ResetStudent(r.Context(), id)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}

// PaymentBody is the request body of POST /api/students/{id}/payments.
type PaymentBody struct {
	Amount  decimal.Decimal `json:"amount"`
	Mode    string          `json:"mode"`
	Remarks string          `json:"remarks"`
}

// Pay handles POST /api/students/{id}/payments.
func (h *StudentsHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	var body PaymentBody
	if !decode(w, r, &body) {
		return
	}

	result, err := h.svc.ApplyPayment(r.Context(), ledger.PaymentRequest{
		StudentID:   id,
		Amount:      body.Amount,
		PaymentMode: body.Mode,
		Remarks:     body.Remarks,
	})
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"payment": result})
}

// Report handles GET /api/students/{id}/report?start=&end=.
func (h *StudentsHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid student ID")
		return
	}

	q := r.URL.Query()
	statement, err := h.rep.StudentStatement(r.Context(), id, q.Get("start"), q.Get("end"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statement)
}
