package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ExpenseStore is an in-memory stand-in for the postgres expense repository,
// matching its query semantics: timestamp-then-id ordering, inclusive time
// bounds, UTC calendar-day revenue sums.
type ExpenseStore struct {
	mu       sync.Mutex
	expenses []*domain.Expense
}

// NewExpenseStore creates an empty in-memory expense store.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{}
}

// Insert stores a copy of the expense.
func (s *ExpenseStore) Insert(_ context.Context, expense *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *expense
	s.expenses = append(s.expenses, &copied)

	return nil
}

// List returns matching expenses in timestamp order.
func (s *ExpenseStore) List(_ context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []*domain.Expense
	for _, e := range s.expenses {
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Start != nil && e.Timestamp.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && e.Timestamp.After(*filter.End) {
			continue
		}
		copied := *e
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.Before(matched[j].Timestamp)
		}
		return matched[i].ID < matched[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// SumConvertedByDate sums converted amounts for the given UTC calendar date.
func (s *ExpenseStore) SumConvertedByDate(_ context.Context, date time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	total := decimal.Zero
	for _, e := range s.expenses {
		if !e.Timestamp.Before(dayStart) && e.Timestamp.Before(dayEnd) {
			total = total.Add(e.AmountUSD)
		}
	}

	return total, nil
}

// Count reports the number of stored expenses.
func (s *ExpenseStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.expenses)
}
