package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine represents a single line item on a receipt.
type ReceiptLine struct {
	Description string
	Amount      decimal.Decimal
	Currency    string
}

// ReceiptSubmission is a receipt as submitted by a client. It is immutable
// once accepted; the verbatim payload is retained in the raw capture store.
type ReceiptSubmission struct {
	IdempotencyKey string
	UserID         string
	Timestamp      time.Time
	Vendor         string
	Currency       string
	Total          decimal.Decimal
	Lines          []ReceiptLine
}
