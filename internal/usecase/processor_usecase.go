package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
	"github.com/Phiwe-Deluca/Travel-expense-api/internal/infrastructure/metrics"
)

// ProcessorUseCase is the deferred processing task: raw capture, then
// normalize, convert and persist. It runs outside the request/response path;
// errors here are terminal for the attempt and surface only through logs,
// metrics and the reservation state.
type ProcessorUseCase struct {
	capture      RawCaptureStore
	expenses     ExpenseRepository
	reservations ReservationStore
	converter    Converter
	retrier      Retrier
	idGen        IDGenerator
	logger       zerolog.Logger
	now          func() time.Time
}

// NewProcessorUseCase creates a new ProcessorUseCase.
func NewProcessorUseCase(
	capture RawCaptureStore,
	expenses ExpenseRepository,
	reservations ReservationStore,
	converter Converter,
	retrier Retrier,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ProcessorUseCase {
	return &ProcessorUseCase{
		capture:      capture,
		expenses:     expenses,
		reservations: reservations,
		converter:    converter,
		retrier:      retrier,
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// Process runs capture -> normalize -> convert -> persist for one accepted
// submission. Each step is a failure point; a failure leaves the reservation
// in place (marked failed, still deduplicating) and no expense record, so
// the gap stays detectable until the reservation expires.
func (uc *ProcessorUseCase) Process(ctx context.Context, sub domain.ReceiptSubmission) error {
	start := uc.now()
	defer func() {
		metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	}()

	capturedAt := uc.now().UTC()
	path, err := uc.capture.Write(ctx, sub, capturedAt)
	if err != nil {
		return uc.fail(ctx, sub, metrics.StageCapture, fmt.Errorf("raw capture: %w", err))
	}
	metrics.CaptureWrites.Inc()

	uc.logger.Debug().
		Str("idempotency_key", sub.IdempotencyKey).
		Str("capture_path", path).
		Msg("raw capture written")

	amountUSD, err := uc.converter.Convert(sub.Total, sub.Currency)
	if err != nil {
		return uc.fail(ctx, sub, metrics.StageConvert, fmt.Errorf("convert %s %s: %w", sub.Total, sub.Currency, err))
	}

	expense := &domain.Expense{
		ID:        uc.idGen.Generate(),
		UserID:    sub.UserID,
		Timestamp: sub.Timestamp,
		Vendor:    sub.Vendor,
		Amount:    sub.Total,
		Currency:  sub.Currency,
		AmountUSD: amountUSD,
		CreatedAt: capturedAt,
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.expenses.Insert(ctx, expense)
	})
	if err != nil {
		return uc.fail(ctx, sub, metrics.StagePersist, fmt.Errorf("insert expense: %w", err))
	}

	metrics.ExpensesCreated.Inc()

	if err := uc.reservations.MarkCompleted(ctx, sub.IdempotencyKey); err != nil {
		// Monitoring metadata only; the record is already durable.
		uc.logger.Warn().
			Err(err).
			Str("idempotency_key", sub.IdempotencyKey).
			Msg("failed to mark reservation completed")
	}

	uc.logger.Info().
		Str("idempotency_key", sub.IdempotencyKey).
		Str("expense_id", expense.ID).
		Str("user_id", expense.UserID).
		Str("amount_usd", expense.AmountUSD.String()).
		Msg("receipt processed")

	return nil
}

func (uc *ProcessorUseCase) fail(ctx context.Context, sub domain.ReceiptSubmission, stage string, err error) error {
	metrics.ProcessingFailures.WithLabelValues(stage).Inc()

	if markErr := uc.reservations.MarkFailed(ctx, sub.IdempotencyKey); markErr != nil {
		uc.logger.Warn().
			Err(markErr).
			Str("idempotency_key", sub.IdempotencyKey).
			Msg("failed to mark reservation failed")
	}

	return fmt.Errorf("%s stage: %w", stage, err)
}
