package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the normalized, currency-converted record persisted for a
// processed receipt submission. Created exactly once per submission and
// never mutated afterwards.
type Expense struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Vendor    string
	Amount    decimal.Decimal
	Currency  string
	AmountUSD decimal.Decimal
	CreatedAt time.Time
}

// ExpenseFilter narrows expense listings.
type ExpenseFilter struct {
	UserID string
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}
