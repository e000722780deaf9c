package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/usecase"
)

type stubIngestService struct {
	result *usecase.IngestResult
	err    error

	gotSubmission domain.ReceiptSubmission
	calls         int
}

func (s *stubIngestService) IngestReceipt(ctx context.Context, sub domain.ReceiptSubmission) (*usecase.IngestResult, error) {
	s.calls++
	s.gotSubmission = sub
	return s.result, s.err
}

func validIngestBody(key string) []byte {
	body := fmt.Sprintf(`{
		"idempotency_key": %q,
		"user_id": "user-1",
		"timestamp": "2026-03-14T09:30:00Z",
		"vendor": "Cafe Nine",
		"currency": "ZAR",
		"total": "184.50",
		"lines": [
			{"description": "flat white", "amount": "42.00", "currency": "ZAR"},
			{"description": "breakfast", "amount": "142.50", "currency": "ZAR"}
		]
	}`, key)
	return []byte(body)
}

func TestIngestHandler_Accepted(t *testing.T) {
	svc := &stubIngestService{
		result: &usecase.IngestResult{IdempotencyKey: "receipt-0001"},
	}
	h := NewIngestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader(validIngestBody("receipt-0001")))
	rec := httptest.NewRecorder()

	h.Ingest(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.IngestReceiptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != dto.StatusAccepted {
		t.Errorf("expected status %q, got %q", dto.StatusAccepted, resp.Status)
	}
	if resp.IdempotencyKey != "receipt-0001" {
		t.Errorf("expected idempotency key echoed back, got %q", resp.IdempotencyKey)
	}
	if resp.Message != "" {
		t.Errorf("expected no message for a first submission, got %q", resp.Message)
	}

	if svc.calls != 1 {
		t.Errorf("expected 1 usecase call, got %d", svc.calls)
	}
	if svc.gotSubmission.UserID != "user-1" {
		t.Errorf("expected user_id passed through, got %q", svc.gotSubmission.UserID)
	}
	if !svc.gotSubmission.Timestamp.Equal(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", svc.gotSubmission.Timestamp)
	}
}

func TestIngestHandler_Duplicate(t *testing.T) {
	svc := &stubIngestService{
		result: &usecase.IngestResult{IdempotencyKey: "receipt-0001", Duplicate: true},
	}
	h := NewIngestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader(validIngestBody("receipt-0001")))
	rec := httptest.NewRecorder()

	h.Ingest(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202 for duplicate, got %d", rec.Code)
	}

	var resp dto.IngestReceiptResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != dto.StatusAccepted {
		t.Errorf("expected status %q, got %q", dto.StatusAccepted, resp.Status)
	}
	if resp.Message != dto.MessageAlreadyHandled {
		t.Errorf("expected message %q, got %q", dto.MessageAlreadyHandled, resp.Message)
	}
}

func TestIngestHandler_InvalidJSON(t *testing.T) {
	svc := &stubIngestService{}
	h := NewIngestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader([]byte(`{not json`)))
	rec := httptest.NewRecorder()

	h.Ingest(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if svc.calls != 0 {
		t.Errorf("expected no usecase call for malformed body, got %d", svc.calls)
	}
}

func TestIngestHandler_ValidationFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing idempotency key",
			body: `{"user_id": "user-1", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "10.00"}`,
		},
		{
			name: "key too short",
			body: `{"idempotency_key": "short", "user_id": "user-1", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "10.00"}`,
		},
		{
			name: "key with path traversal",
			body: `{"idempotency_key": "../../../escaped", "user_id": "user-1", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "10.00"}`,
		},
		{
			name: "missing user",
			body: `{"idempotency_key": "receipt-0001", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "10.00"}`,
		},
		{
			name: "non-positive total",
			body: `{"idempotency_key": "receipt-0001", "user_id": "user-1", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "0"}`,
		},
		{
			name: "line currency mismatch",
			body: `{"idempotency_key": "receipt-0001", "user_id": "user-1", "timestamp": "2026-03-14T09:30:00Z", "currency": "USD", "total": "10.00", "lines": [{"amount": "10.00", "currency": "EUR"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubIngestService{}
			h := NewIngestHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			h.Ingest(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if svc.calls != 0 {
				t.Errorf("expected no usecase call for invalid submission, got %d", svc.calls)
			}
		})
	}
}

func TestIngestHandler_ReservationUnavailable(t *testing.T) {
	svc := &stubIngestService{
		err: fmt.Errorf("%w: dial tcp: connection refused", domain.ErrReservationUnavailable),
	}
	h := NewIngestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader(validIngestBody("receipt-0001")))
	rec := httptest.NewRecorder()

	h.Ingest(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestIngestHandler_InternalError(t *testing.T) {
	svc := &stubIngestService{err: errors.New("pool exhausted")}
	h := NewIngestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/ingest/receipt", bytes.NewReader(validIngestBody("receipt-0001")))
	rec := httptest.NewRecorder()

	h.Ingest(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
