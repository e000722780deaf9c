package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// DefaultMaxEntries caps the fallback store when no limit is configured.
const DefaultMaxEntries = 10000

type entry struct {
	state      domain.ReservationState
	expiresAt  time.Time
	reservedAt time.Time
}

// ReservationStore is the degraded single-process fallback used when the
// shared redis store is unreachable. It honors per-entry TTLs and is capped:
// at capacity it evicts expired entries first, then the oldest reservation.
// It does not survive restarts and is never the primary path when a shared
// store is reachable.
type ReservationStore struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// NewReservationStore creates a capped in-memory reservation store.
func NewReservationStore(maxEntries int) *ReservationStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &ReservationStore{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Reserve reserves key for ttl. The mutex is the single mandatory
// mutual-exclusion point: concurrent callers with the same key serialize
// here and exactly one sees the key absent.
func (s *ReservationStore) Reserve(_ context.Context, key string, ttl time.Duration) (domain.ReservationOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if e, ok := s.entries[key]; ok && e.expiresAt.After(now) {
		return domain.AlreadySeen, nil
	}

	if len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}

	s.entries[key] = entry{
		state:      domain.ReservationProcessing,
		expiresAt:  now.Add(ttl),
		reservedAt: now,
	}

	return domain.FirstSeen, nil
}

// MarkCompleted records successful processing for key.
func (s *ReservationStore) MarkCompleted(_ context.Context, key string) error {
	return s.setState(key, domain.ReservationCompleted)
}

// MarkFailed records terminal processing failure for key.
func (s *ReservationStore) MarkFailed(_ context.Context, key string) error {
	return s.setState(key, domain.ReservationFailed)
}

func (s *ReservationStore) setState(key string, state domain.ReservationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.expiresAt.After(s.now()) {
		e.state = state
		s.entries[key] = e
	}

	return nil
}

// State reports the reservation state for key.
func (s *ReservationStore) State(_ context.Context, key string) (domain.ReservationState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !e.expiresAt.After(s.now()) {
		return "", false, nil
	}

	return e.state, true, nil
}

// Len reports the number of stored entries, expired or not.
func (s *ReservationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// evictLocked drops every expired entry; if nothing expired, it drops the
// oldest reservation so the map never grows past its cap.
func (s *ReservationStore) evictLocked(now time.Time) {
	evicted := false
	for k, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, k)
			evicted = true
		}
	}
	if evicted {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	for k, e := range s.entries {
		if oldestKey == "" || e.reservedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.reservedAt
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
