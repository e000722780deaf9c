package domain

import (
	"fmt"
	"strings"
)

// MinIdempotencyKeyLength is the minimum accepted idempotency key length.
const MinIdempotencyKeyLength = 8

// ValidateSubmission checks that a receipt submission carries everything the
// pipeline needs. Malformed submissions are rejected synchronously and never
// reach the reservation step.
func ValidateSubmission(sub ReceiptSubmission) error {
	if strings.TrimSpace(sub.IdempotencyKey) == "" {
		return ErrMissingIdempotencyKey
	}

	if len(sub.IdempotencyKey) < MinIdempotencyKeyLength {
		return fmt.Errorf("%w: minimum length is %d", ErrIdempotencyKeyTooShort, MinIdempotencyKeyLength)
	}

	// The key names the raw capture file; a key carrying path separators or
	// a parent reference could place that file outside the capture directory.
	if strings.ContainsAny(sub.IdempotencyKey, `/\`) || strings.Contains(sub.IdempotencyKey, "..") {
		return fmt.Errorf("%w: path separators and '..' are not allowed", ErrInvalidIdempotencyKey)
	}

	if strings.TrimSpace(sub.UserID) == "" {
		return ErrMissingUserID
	}

	if sub.Timestamp.IsZero() {
		return ErrMissingTimestamp
	}

	if strings.TrimSpace(sub.Currency) == "" {
		return ErrMissingCurrency
	}

	if !sub.Total.IsPositive() {
		return ErrInvalidAmount
	}

	for i, line := range sub.Lines {
		if line.Currency != "" && !strings.EqualFold(line.Currency, sub.Currency) {
			return fmt.Errorf("%w: line %d has %s, receipt has %s", ErrCurrencyMismatch, i, line.Currency, sub.Currency)
		}
	}

	return nil
}
