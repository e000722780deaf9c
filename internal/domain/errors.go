package domain

import "errors"

var (
	// Submission validation errors
	ErrMissingIdempotencyKey  = errors.New("idempotency key is required")
	ErrIdempotencyKeyTooShort = errors.New("idempotency key is too short")
	ErrInvalidIdempotencyKey  = errors.New("idempotency key contains invalid characters")
	ErrMissingUserID          = errors.New("user id is required")
	ErrMissingTimestamp       = errors.New("timestamp is required")
	ErrMissingCurrency        = errors.New("currency is required")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrCurrencyMismatch       = errors.New("line currency does not match receipt currency")

	// Conversion errors
	ErrUnknownCurrency = errors.New("unknown currency code")

	// Reservation errors
	ErrReservationUnavailable = errors.New("reservation store unavailable")
)
