package usecase

import "time"

const (
	// DefaultReservationTTL is how long an idempotency key stays reserved.
	// Entries are never cleared on completion; they age out.
	DefaultReservationTTL = time.Hour

	// DefaultListLimit bounds expense listings when the caller gives none.
	DefaultListLimit = 100

	// MaxListLimit caps expense listings regardless of the caller.
	MaxListLimit = 1000
)
