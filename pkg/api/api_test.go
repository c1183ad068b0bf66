package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/ledger"
	"github.com/shunichi-ikebuchi/canteen-ledger/pkg/report"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "canteen.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	svc := ledger.NewService(conn, ledger.Config{
		Now:    func() time.Time { return time.Date(2024, 3, 15, 13, 0, 0, 0, time.Local) },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	server := httptest.NewServer(NewRouter(svc, report.New(conn, svc.Tariff())))
	t.Cleanup(func() {
		server.Close()
		_ = conn.Close()
	})
	return server
}

func doRequest(t *testing.T, server *httptest.Server, method, path, body string, wantStatus int, out any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, wantStatus, resp.StatusCode, data)
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("Failed to decode response: %v: %s", err, data)
		}
	}
}

type studentResponse struct {
	Student db.Student `json:"student"`
}

type balanceResponse struct {
	Balance ledger.Balance `json:"balance"`
}

func TestLedgerScenario(t *testing.T) {
	server := setupTestServer(t)

	// Create a student
	var created studentResponse
	doRequest(t, server, http.MethodPost, "/api/students", `{"name":"Asha","roll":"R-1","dept":"CSE"}`, http.StatusCreated, &created)
	if created.Student.ID != 1 || created.Student.PaymentStatus != db.StatusUnpaid {
		t.Fatalf("created = %+v", created.Student)
	}
	id := created.Student.ID

	// Lunch on Account
	var sale struct {
		Bill ledger.BillReceipt `json:"bill"`
	}
	doRequest(t, server, http.MethodPost, "/api/bills",
		fmt.Sprintf(`{"payer_type":"hostel","student_id":%d,"meal_type":"Lunch","amount":50,"payment_mode":"Account"}`, id),
		http.StatusCreated, &sale)
	if sale.Bill.Balance == nil || !sale.Bill.Balance.Remaining.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("sale = %+v", sale.Bill)
	}

	// Pay 30
	var paid struct {
		Payment ledger.PaymentResult `json:"payment"`
	}
	doRequest(t, server, http.MethodPost, fmt.Sprintf("/api/students/%d/payments", id), `{"amount":"30","mode":"UPI"}`, http.StatusCreated, &paid)
	if paid.Payment.Status != db.StatusPartial || !paid.Payment.Remaining.Equal(decimal.NewFromInt(20)) {
		t.Errorf("payment = %+v", paid.Payment)
	}

	// Reverse the lunch
	var reversed balanceResponse
	doRequest(t, server, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", sale.Bill.JournalEntryID), "", http.StatusOK, &reversed)
	if !reversed.Balance.Remaining.Equal(decimal.NewFromInt(-30)) || reversed.Balance.Status != db.StatusPaid {
		t.Errorf("reversed = %+v", reversed.Balance)
	}

	var got studentResponse
	doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/students/%d", id), "", http.StatusOK, &got)
	if !got.Student.AmountPaid.Equal(decimal.NewFromInt(30)) {
		t.Errorf("student = %+v", got.Student)
	}

	// Bill survives the reversal
	var bill struct {
		Bill db.Bill `json:"bill"`
	}
	doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/bills/%d", sale.Bill.BillNo), "", http.StatusOK, &bill)
	if bill.Bill.StudentName != "Asha" || bill.Bill.Detail.Item != "Lunch" {
		t.Errorf("bill = %+v", bill.Bill)
	}

	// Statement
	var statement report.StudentStatement
	doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/students/%d/report?start=2024-03-01&end=2024-03-31", id), "", http.StatusOK, &statement)
	if statement.Summary.Lunch != 1 || len(statement.Transactions) != 1 {
		t.Errorf("statement = %+v", statement.Summary)
	}

	// Meal counts
	var meals report.MealCounts
	doRequest(t, server, http.MethodGet, "/api/reports/meals?date=2024-03-15", "", http.StatusOK, &meals)
	if meals.Lunch != 1 {
		t.Errorf("meals = %+v", meals)
	}

	// Reset then delete
	var reset balanceResponse
	doRequest(t, server, http.MethodPost, fmt.Sprintf("/api/students/%d/reset", id), "", http.StatusOK, &reset)
	if !reset.Balance.Remaining.IsZero() || reset.Balance.Status != db.StatusUnpaid {
		t.Errorf("reset = %+v", reset.Balance)
	}
	doRequest(t, server, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), "", http.StatusNoContent, nil)
	doRequest(t, server, http.MethodGet, fmt.Sprintf("/api/students/%d", id), "", http.StatusNotFound, nil)

	var stats report.Stats
	doRequest(t, server, http.MethodGet, "/api/reports/stats", "", http.StatusOK, &stats)
	if stats.Students != 0 || stats.Bills != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestErrorResponses(t *testing.T) {
	server := setupTestServer(t)
	doRequest(t, server, http.MethodPost, "/api/students", `{"name":"Asha","roll":"R-1"}`, http.StatusCreated, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"duplicate roll", http.MethodPost, "/api/students", `{"name":"Other","roll":"R-1"}`, http.StatusConflict, "conflict"},
		{"missing name", http.MethodPost, "/api/students", `{"roll":"R-9"}`, http.StatusBadRequest, "invalid_parameter"},
		{"malformed body", http.MethodPost, "/api/bills", `{"payer_type":`, http.StatusBadRequest, "invalid_request"},
		{"invalid id", http.MethodGet, "/api/students/abc", "", http.StatusBadRequest, "invalid_parameter"},
		{"unknown student", http.MethodGet, "/api/students/42", "", http.StatusNotFound, "not_found"},
		{"sale for unknown student", http.MethodPost, "/api/bills", `{"payer_type":"hostel","student_id":42,"meal_type":"lunch","amount":40,"payment_mode":"Account"}`, http.StatusNotFound, "not_found"},
		{"zero payment", http.MethodPost, "/api/students/1/payments", `{"amount":0}`, http.StatusBadRequest, "invalid_parameter"},
		{"unknown transaction", http.MethodDelete, "/api/transactions/7", "", http.StatusNotFound, "not_found"},
		{"unknown bill", http.MethodGet, "/api/bills/7", "", http.StatusNotFound, "not_found"},
		{"bad report range", http.MethodGet, "/api/reports/summary?start=2024-03-02&end=2024-03-01", "", http.StatusBadRequest, "invalid_parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			doRequest(t, server, tt.method, tt.path, tt.body, tt.status, &resp)
			if resp.Error != tt.code {
				t.Errorf("error code = %q, expected %q", resp.Error, tt.code)
			}
		})
	}
}

func TestListAndSummary(t *testing.T) {
	server := setupTestServer(t)

	var list struct {
		Students []db.Student `json:"students"`
	}
	doRequest(t, server, http.MethodGet, "/api/students", "", http.StatusOK, &list)
	if list.Students == nil || len(list.Students) != 0 {
		t.Errorf("empty list = %+v", list.Students)
	}

	for _, name := range []string{"A", "B"} {
		doRequest(t, server, http.MethodPost, "/api/students", fmt.Sprintf(`{"name":%q}`, name), http.StatusCreated, nil)
	}
	var updated studentResponse
	doRequest(t, server, http.MethodPut, "/api/students/2", `{"name":"Bala","phone":"555"}`, http.StatusOK, &updated)
	if updated.Student.Name != "Bala" || updated.Student.Phone != "555" {
		t.Errorf("updated = %+v", updated.Student)
	}

	doRequest(t, server, http.MethodGet, "/api/students", "", http.StatusOK, &list)
	if len(list.Students) != 2 {
		t.Errorf("list = %+v", list.Students)
	}

	var summary struct {
		Students []report.StudentPeriod `json:"students"`
	}
	doRequest(t, server, http.MethodGet, "/api/reports/summary", "", http.StatusOK, &summary)
	if len(summary.Students) != 2 || summary.Students[1].Name != "Bala" {
		t.Errorf("summary = %+v", summary.Students)
	}
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Errorf("health = %d %q", resp.StatusCode, body)
	}
}
