package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/adapter/http/dto"
)

// dateLayout is the calendar-date format for report queries.
const dateLayout = "2006-01-02"

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	DailyRevenue(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	expenseUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(expenseUC ReportService) *ReportHandler {
	return &ReportHandler{expenseUC: expenseUC}
}

// DailyRevenue returns the summed converted amount for one calendar date,
// zero when no records match.
func (h *ReportHandler) DailyRevenue(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing date parameter", "expected date=YYYY-MM-DD")
		return
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	total, err := h.expenseUC.DailyRevenue(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute daily revenue", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DailyRevenueResponse{
		Date:     raw,
		TotalUSD: total,
	})
}
