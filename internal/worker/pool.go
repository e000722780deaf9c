package worker

import (
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
)

// Pool runs deferred processing tasks on a bounded goroutine pool, decoupled
// from the request/response cycle. Tasks for different keys run concurrently
// with no ordering guarantee; a panicking task is logged and must not take
// the pool down. Scheduling is in-memory only: a task in flight when the
// process dies is lost, along with its reservation (accepted risk, no
// durable queue).
type Pool struct {
	pool   *ants.Pool
	logger zerolog.Logger
}

// NewPool creates a worker pool of the given size.
func NewPool(size int, logger zerolog.Logger) (*Pool, error) {
	p := &Pool{logger: logger}

	pool, err := ants.NewPool(size, ants.WithPanicHandler(func(v any) {
		p.logger.Error().
			Interface("panic", v).
			Msg("deferred task panicked")
	}))
	if err != nil {
		return nil, err
	}

	p.pool = pool

	return p, nil
}

// Submit schedules a task for asynchronous execution. It returns an error
// when the pool is closed or saturated; it never waits for the task.
func (p *Pool) Submit(task func()) error {
	return p.pool.Submit(task)
}

// Running reports the number of tasks currently executing.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Shutdown waits up to timeout for in-flight tasks, then releases the pool.
func (p *Pool) Shutdown(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.logger.Warn().
			Err(err).
			Int("running", p.pool.Running()).
			Msg("worker pool shutdown timed out")
	}
}
