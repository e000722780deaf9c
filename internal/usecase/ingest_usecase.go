package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// IngestUseCase accepts receipt submissions. It owns the reservation check
// and the scheduling of deferred processing; it never waits for processing
// to finish.
type IngestUseCase struct {
	reservations ReservationStore
	processor    ReceiptProcessor
	scheduler    TaskScheduler
	ttl          time.Duration
	logger       zerolog.Logger
}

// NewIngestUseCase creates a new IngestUseCase.
func NewIngestUseCase(
	reservations ReservationStore,
	processor ReceiptProcessor,
	scheduler TaskScheduler,
	ttl time.Duration,
	logger zerolog.Logger,
) *IngestUseCase {
	if ttl <= 0 {
		ttl = DefaultReservationTTL
	}

	return &IngestUseCase{
		reservations: reservations,
		processor:    processor,
		scheduler:    scheduler,
		ttl:          ttl,
		logger:       logger,
	}
}

// IngestResult reports how a submission was accepted.
type IngestResult struct {
	IdempotencyKey string
	Duplicate      bool
}

// IngestReceipt reserves the submission's idempotency key and, on first
// sight, schedules the deferred processing task. Duplicate submissions are
// not failures; they are acknowledged without scheduling anything.
//
// A reservation store error mid-operation is propagated as
// domain.ErrReservationUnavailable rather than silently accepted.
func (uc *IngestUseCase) IngestReceipt(ctx context.Context, sub domain.ReceiptSubmission) (*IngestResult, error) {
	outcome, err := uc.reservations.Reserve(ctx, sub.IdempotencyKey, uc.ttl)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReservationUnavailable, err)
	}

	if outcome == domain.AlreadySeen {
		uc.logger.Debug().
			Str("idempotency_key", sub.IdempotencyKey).
			Msg("duplicate submission suppressed")

		return &IngestResult{IdempotencyKey: sub.IdempotencyKey, Duplicate: true}, nil
	}

	// Detach from the request context: the caller gets its acknowledgment
	// before (and regardless of whether) processing runs. The task has no
	// timeout; once scheduled it runs to completion or failure.
	submission := sub
	err = uc.scheduler.Submit(func() {
		if procErr := uc.processor.Process(context.Background(), submission); procErr != nil {
			uc.logger.Error().
				Err(procErr).
				Str("idempotency_key", submission.IdempotencyKey).
				Str("user_id", submission.UserID).
				Msg("deferred receipt processing failed")
		}
	})
	if err != nil {
		// The key stays reserved even though nothing was scheduled; it
		// becomes reservable again after the TTL, like any failed attempt.
		return nil, fmt.Errorf("schedule deferred processing: %w", err)
	}

	return &IngestResult{IdempotencyKey: sub.IdempotencyKey, Duplicate: false}, nil
}

// IsReservationUnavailable reports whether err came from the reservation
// store being unreachable mid-operation.
func IsReservationUnavailable(err error) bool {
	return errors.Is(err, domain.ErrReservationUnavailable)
}
