package domain

// ReservationOutcome is the result of attempting to reserve an idempotency key.
type ReservationOutcome int

const (
	// FirstSeen means the key was not reserved before and now is.
	FirstSeen ReservationOutcome = iota
	// AlreadySeen means the key was reserved earlier and must not be reprocessed.
	AlreadySeen
)

// ReservationState tracks the lifecycle of a reserved key. Any non-absent
// state counts as AlreadySeen for deduplication; Completed and Failed exist
// so monitoring and replay tooling can tell "still processing", "done" and
// "abandoned" apart.
type ReservationState string

const (
	ReservationProcessing ReservationState = "processing"
	ReservationCompleted  ReservationState = "completed"
	ReservationFailed     ReservationState = "failed"
)
