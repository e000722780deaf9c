package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ExpenseRepository implements usecase.ExpenseRepository ("silver" layer).
// Records are inserted exactly once per processed submission and never
// mutated afterwards.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Insert persists a normalized expense record.
func (r *ExpenseRepository) Insert(ctx context.Context, expense *domain.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, timestamp, vendor, amount, currency, amount_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	amount, err := decimalToNumeric(expense.Amount)
	if err != nil {
		return err
	}

	amountUSD, err := decimalToNumeric(expense.AmountUSD)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Timestamp,
		expense.Vendor,
		amount,
		expense.Currency,
		amountUSD,
		expense.CreatedAt,
	)

	return err
}

// List retrieves expense records in event-timestamp order, honoring the
// optional user and time-range filters plus limit/offset.
func (r *ExpenseRepository) List(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	query := `
		SELECT id, user_id, timestamp, vendor, amount, currency, amount_usd, created_at
		FROM expenses
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argPos)
		args = append(args, filter.UserID)
		argPos++
	}

	if filter.Start != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", argPos)
		args = append(args, *filter.Start)
		argPos++
	}

	if filter.End != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", argPos)
		args = append(args, *filter.End)
		argPos++
	}

	query += " ORDER BY timestamp, id"

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		var (
			e         domain.Expense
			amount    pgtype.Numeric
			amountUSD pgtype.Numeric
		)

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Timestamp,
			&e.Vendor,
			&amount,
			&e.Currency,
			&amountUSD,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		e.Amount = numericToDecimal(amount)
		e.AmountUSD = numericToDecimal(amountUSD)
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

// SumConvertedByDate sums converted amounts for records whose event
// timestamp falls on the given UTC calendar date. Zero when none match.
func (r *ExpenseRepository) SumConvertedByDate(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT COALESCE(SUM(amount_usd), 0)
		FROM expenses
		WHERE timestamp >= $1 AND timestamp < $2
	`

	var total pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, dayStart, dayEnd).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var n pgtype.Numeric

	if err := n.Scan(d.String()); err != nil {
		return n, fmt.Errorf("convert decimal %s to numeric: %w", d, err)
	}

	return n, nil
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}
