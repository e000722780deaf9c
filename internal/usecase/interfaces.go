package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ReservationStore answers "has this submission been accepted before?" and
// atomically marks first-seen keys as in-progress. Shared across process
// instances when backed by redis; a local capped map otherwise.
type ReservationStore interface {
	// Reserve atomically reserves key for ttl. Exactly one of any set of
	// concurrent callers with the same key receives FirstSeen.
	Reserve(ctx context.Context, key string, ttl time.Duration) (domain.ReservationOutcome, error)
	// MarkCompleted records that processing for key finished successfully.
	// Monitoring metadata only; the key stays deduplicated either way.
	MarkCompleted(ctx context.Context, key string) error
	// MarkFailed records that processing for key failed terminally.
	MarkFailed(ctx context.Context, key string) error
}

// ExpenseRepository defines data access for normalized expense records.
type ExpenseRepository interface {
	Insert(ctx context.Context, expense *domain.Expense) error
	List(ctx context.Context, filter domain.ExpenseFilter) ([]*domain.Expense, error)
	SumConvertedByDate(ctx context.Context, date time.Time) (decimal.Decimal, error)
}

// RawCaptureStore persists verbatim submission payloads ("bronze" layer).
// Append-only; records exist independently of downstream processing.
type RawCaptureStore interface {
	Write(ctx context.Context, sub domain.ReceiptSubmission, capturedAt time.Time) (string, error)
}

// TaskScheduler runs deferred work outside the request/response path.
type TaskScheduler interface {
	Submit(task func()) error
}

// ReceiptProcessor executes the deferred capture/normalize/convert/persist
// steps for one accepted submission.
type ReceiptProcessor interface {
	Process(ctx context.Context, sub domain.ReceiptSubmission) error
}

// Converter normalizes an amount into the reference currency.
type Converter interface {
	Convert(amount decimal.Decimal, code string) (decimal.Decimal, error)
}

// Retrier retries an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
