package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
)

type stubReportService struct {
	total decimal.Decimal
	err   error

	gotDate time.Time
}

func (s *stubReportService) DailyRevenue(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	s.gotDate = date
	return s.total, s.err
}

func TestReportHandler_DailyRevenue(t *testing.T) {
	svc := &stubReportService{total: decimal.RequireFromString("123.45")}
	h := NewReportHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue?date=2026-03-14", nil)
	rec := httptest.NewRecorder()

	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.DailyRevenueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Date != "2026-03-14" {
		t.Errorf("expected date echoed back, got %q", resp.Date)
	}
	if !resp.TotalUSD.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("unexpected total %s", resp.TotalUSD)
	}

	if !svc.gotDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date passed to usecase: %v", svc.gotDate)
	}
}

func TestReportHandler_DailyRevenue_ZeroWhenEmpty(t *testing.T) {
	svc := &stubReportService{total: decimal.Zero}
	h := NewReportHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue?date=2026-03-15", nil)
	rec := httptest.NewRecorder()

	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp dto.DailyRevenueResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.TotalUSD.IsZero() {
		t.Errorf("expected zero total, got %s", resp.TotalUSD)
	}
}

func TestReportHandler_DailyRevenue_MissingDate(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue", nil)
	rec := httptest.NewRecorder()

	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestReportHandler_DailyRevenue_InvalidDate(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	req := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue?date=14-03-2026", nil)
	rec := httptest.NewRecorder()

	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestReportHandler_DailyRevenue_RepositoryError(t *testing.T) {
	svc := &stubReportService{err: errors.New("connection reset")}
	h := NewReportHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/reports/daily_revenue?date=2026-03-14", nil)
	rec := httptest.NewRecorder()

	h.DailyRevenue(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
