package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
	"github.com/Phiwe-Deluca/Travel-expense-api/tests/testutil"
)

const receiptBody = `{
	"idempotency_key": "abc12345",
	"user_id": "u1",
	"timestamp": "2024-01-01T12:00:00Z",
	"vendor": "Hotel Azul",
	"currency": "ZAR",
	"total": "100",
	"lines": [
		{"description": "room", "amount": "100", "currency": "ZAR"}
	]
}`

func postReceipt(t *testing.T, env *testutil.TestEnv, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader([]byte(body)))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	env.Router.ServeHTTP(w, r)

	return w
}

func TestIngestReceiptEndToEnd(t *testing.T) {
	env := testutil.NewTestEnv(t)

	// Submit: the acknowledgment must not wait for processing.
	w := postReceipt(t, env, receiptBody)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var ack dto.IngestReceiptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if ack.Status != dto.StatusAccepted {
		t.Errorf("expected status %q, got %q", dto.StatusAccepted, ack.Status)
	}
	if ack.IdempotencyKey != "abc12345" {
		t.Errorf("expected key echoed back, got %q", ack.IdempotencyKey)
	}

	// Deferred processing produces the normalized record.
	testutil.WaitFor(t, 2*time.Second, func() bool { return env.Expenses.Count() == 1 })

	// Raw capture file exists, named after the key.
	entries, err := os.ReadDir(env.BronzeDir)
	if err != nil {
		t.Fatalf("read bronze dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 capture file, got %d", len(entries))
	}
	if name := entries[0].Name(); !strings.HasSuffix(name, "_abc12345.json") {
		t.Errorf("unexpected capture file name %q", name)
	}

	// List endpoint returns the converted record: 100 ZAR at 0.054 = 5.4 USD.
	r := httptest.NewRequest(http.MethodGet, "/expenses?user_id=u1", nil)
	lw := httptest.NewRecorder()
	env.Router.ServeHTTP(lw, r)

	if lw.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, lw.Code, lw.Body.String())
	}

	var expenses []dto.ExpenseResponse
	if err := json.Unmarshal(lw.Body.Bytes(), &expenses); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}

	e := expenses[0]
	if e.UserID != "u1" {
		t.Errorf("expected user u1, got %q", e.UserID)
	}
	if e.Currency != "ZAR" {
		t.Errorf("expected original currency preserved, got %q", e.Currency)
	}
	if !e.Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected original amount 100, got %s", e.Amount)
	}
	if !e.AmountUSD.Equal(decimal.RequireFromString("5.4")) {
		t.Errorf("expected converted amount 5.4, got %s", e.AmountUSD)
	}
	if e.ID == "" {
		t.Error("expected a generated record ID")
	}
}

func TestIngestReceiptDuplicateSuppressed(t *testing.T) {
	env := testutil.NewTestEnv(t)

	if w := postReceipt(t, env, receiptBody); w.Code != http.StatusAccepted {
		t.Fatalf("first submission: expected 202, got %d", w.Code)
	}
	testutil.WaitFor(t, 2*time.Second, func() bool { return env.Expenses.Count() == 1 })

	// Same key again: acknowledged, but nothing new is processed.
	w := postReceipt(t, env, receiptBody)
	if w.Code != http.StatusAccepted {
		t.Fatalf("duplicate submission: expected 202, got %d", w.Code)
	}

	var ack dto.IngestReceiptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if ack.Message != dto.MessageAlreadyHandled {
		t.Errorf("expected message %q, got %q", dto.MessageAlreadyHandled, ack.Message)
	}

	if got := env.Expenses.Count(); got != 1 {
		t.Errorf("expected 1 expense record after duplicate, got %d", got)
	}

	entries, err := os.ReadDir(env.BronzeDir)
	if err != nil {
		t.Fatalf("read bronze dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 capture file after duplicate, got %d", len(entries))
	}
}

func TestDailyRevenueEndToEnd(t *testing.T) {
	env := testutil.NewTestEnv(t)

	submissions := []string{
		`{"idempotency_key": "rev-day1-a", "user_id": "u1", "timestamp": "2024-01-01T08:00:00Z", "currency": "USD", "total": "10.0", "lines": []}`,
		`{"idempotency_key": "rev-day1-b", "user_id": "u2", "timestamp": "2024-01-01T20:00:00Z", "currency": "USD", "total": "5.5", "lines": []}`,
		`{"idempotency_key": "rev-day2-a", "user_id": "u1", "timestamp": "2024-01-02T09:00:00Z", "currency": "USD", "total": "100.0", "lines": []}`,
	}
	for _, body := range submissions {
		if w := postReceipt(t, env, body); w.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
		}
	}
	testutil.WaitFor(t, 2*time.Second, func() bool { return env.Expenses.Count() == 3 })

	r := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue?date=2024-01-01", nil)
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var report dto.DailyRevenueResponse
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if report.Date != "2024-01-01" {
		t.Errorf("expected date echoed back, got %q", report.Date)
	}
	if !report.TotalUSD.Equal(decimal.RequireFromString("15.5")) {
		t.Errorf("expected total 15.5 excluding other days, got %s", report.TotalUSD)
	}
}
