package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// Ingest acknowledgment statuses. Acceptance never reports whether the
// deferred processing ultimately succeeded.
const (
	StatusAccepted        = "accepted"
	MessageAlreadyHandled = "already processed"
)

// IngestReceiptResponse acknowledges a submission.
type IngestReceiptResponse struct {
	Status         string `json:"status"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
	Message        string `json:"message,omitempty"`
}

// ExpenseResponse represents a normalized expense record in API responses.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Timestamp time.Time       `json:"timestamp"`
	Vendor    string          `json:"vendor,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Timestamp: e.Timestamp,
		Vendor:    e.Vendor,
		Amount:    e.Amount,
		Currency:  e.Currency,
		AmountUSD: e.AmountUSD,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// DailyRevenueResponse represents a daily revenue report.
type DailyRevenueResponse struct {
	Date     string          `json:"date"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
