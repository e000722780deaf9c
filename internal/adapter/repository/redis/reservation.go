package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Phiwe-Deluca/Travel-expense-api/internal/domain"
)

// ReservationStore implements usecase.ReservationStore on a shared redis
// instance. Redis owns expiry: a key reserved with SETNX stays visible to
// every pipeline instance until its TTL runs out. Entries are never deleted
// on completion; MarkCompleted/MarkFailed only rewrite the state value,
// keeping the remaining TTL.
type ReservationStore struct {
	client *redis.Client
	prefix string
}

// NewReservationStore creates a new ReservationStore.
func NewReservationStore(client *redis.Client) *ReservationStore {
	return &ReservationStore{
		client: client,
		prefix: "reservation:",
	}
}

// Reserve atomically reserves key for ttl. SETNX guarantees that exactly one
// of any set of concurrent callers gets FirstSeen.
func (s *ReservationStore) Reserve(ctx context.Context, key string, ttl time.Duration) (domain.ReservationOutcome, error) {
	set, err := s.client.SetNX(ctx, s.prefix+key, string(domain.ReservationProcessing), ttl).Result()
	if err != nil {
		return domain.AlreadySeen, err
	}

	if !set {
		return domain.AlreadySeen, nil
	}

	return domain.FirstSeen, nil
}

// MarkCompleted records successful processing for key. The original TTL is
// preserved so the entry still ages out on schedule.
func (s *ReservationStore) MarkCompleted(ctx context.Context, key string) error {
	return s.setState(ctx, key, domain.ReservationCompleted)
}

// MarkFailed records terminal processing failure for key. The key remains
// reserved (and the submission blocked) until the TTL expires.
func (s *ReservationStore) MarkFailed(ctx context.Context, key string) error {
	return s.setState(ctx, key, domain.ReservationFailed)
}

func (s *ReservationStore) setState(ctx context.Context, key string, state domain.ReservationState) error {
	// XX: only update entries that still exist; a key that already expired
	// needs no state for tooling to look at.
	err := s.client.SetArgs(ctx, s.prefix+key, string(state), redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if err == redis.Nil {
		return nil
	}

	return err
}

// State reports the reservation state for key, for monitoring and replay
// tooling. The bool is false when no reservation exists.
func (s *ReservationStore) State(ctx context.Context, key string) (domain.ReservationState, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return domain.ReservationState(val), true, nil
}
