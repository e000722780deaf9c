package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ReceiptLineRequest represents a single line item in a receipt submission.
type ReceiptLineRequest struct {
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// IngestReceiptRequest represents a receipt submission.
type IngestReceiptRequest struct {
	IdempotencyKey string               `json:"idempotency_key"`
	UserID         string               `json:"user_id"`
	Timestamp      time.Time            `json:"timestamp"`
	Vendor         string               `json:"vendor,omitempty"`
	Currency       string               `json:"currency"`
	Total          decimal.Decimal      `json:"total"`
	Lines          []ReceiptLineRequest `json:"lines"`
}

// ToDomain converts to a domain submission.
func (r *IngestReceiptRequest) ToDomain() domain.ReceiptSubmission {
	lines := make([]domain.ReceiptLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.ReceiptLine{
			Description: l.Description,
			Amount:      l.Amount,
			Currency:    l.Currency,
		}
	}

	return domain.ReceiptSubmission{
		IdempotencyKey: r.IdempotencyKey,
		UserID:         r.UserID,
		Timestamp:      r.Timestamp,
		Vendor:         r.Vendor,
		Currency:       r.Currency,
		Total:          r.Total,
		Lines:          lines,
	}
}
