package api

import (
	"net/http"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
)

// BillsHandler handles sale endpoints.
type BillsHandler struct {
	svc *ledger.Service
}

// NewBillsHandler creates a new BillsHandler.
func NewBillsHandler(svc *ledger.Service) *BillsHandler {
	return &BillsHandler{svc: svc}
}

// Create handles POST /api/bills.
func (h *BillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ledger.SaleRequest
	if !decode(w, r, &req) {
		return
	}

	receipt, err := h.svc.RecordSale(r.Context(), req)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"bill": receipt})
}

// Get handles GET /api/bills/{billNo}.
func (h *BillsHandler) Get(w http.ResponseWriter, r *http.Request) {
	billNo, ok := pathID(r, "billNo")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid bill number")
		return
	}

	bill, err := h.svc.GetBill(r.Context(), billNo)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bill": bill})
}

// TransactionsHandler handles journal entry endpoints.
type TransactionsHandler struct {
	svc *ledger.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(svc *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// Reverse handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Invalid transaction ID")
		return
	}

	balance, err := h.svc.ReverseEntry(r.Context(), id)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}
