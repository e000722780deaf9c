package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ExpenseUseCase handles expense query business logic. Reads come only from
// the normalized store; the raw capture sink is for auditors and replayers.
type ExpenseUseCase struct {
	expenses ExpenseRepository
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(expenses ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenses: expenses}
}

// ListExpensesInput represents input for listing expenses.
type ListExpensesInput struct {
	UserID string
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}

// ListExpenses lists expense records in timestamp order.
func (uc *ExpenseUseCase) ListExpenses(ctx context.Context, input ListExpensesInput) ([]*domain.Expense, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultListLimit
	}

	if input.Limit > MaxListLimit {
		input.Limit = MaxListLimit
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.expenses.List(ctx, domain.ExpenseFilter{
		UserID: input.UserID,
		Start:  input.Start,
		End:    input.End,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

// DailyRevenue sums converted amounts for records whose event timestamp
// falls on the given calendar date. Zero when nothing matches.
func (uc *ExpenseUseCase) DailyRevenue(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	return uc.expenses.SumConvertedByDate(ctx, date)
}
