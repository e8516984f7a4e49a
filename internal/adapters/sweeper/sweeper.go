// Package sweeper periodically recounts competitions per lifecycle phase and
// feeds the Prometheus phase gauges. It only reads; status stays derived.
package sweeper

import (
	"context"
	"time"

	"github.com/okian/ovation/internal/domain/model"
	"github.com/okian/ovation/pkg/logger"
	"github.com/okian/ovation/pkg/metrics"
)

// Default sweeper configuration constants.
const (
	defaultInterval = 15 * time.Second
)

// Counter is the slice of the repository the sweeper needs.
type Counter interface {
	PhaseCounts(ctx context.Context, now time.Time) map[model.Status]int
	Count(ctx context.Context) int
}

// Sweeper runs the periodic phase recount.
type Sweeper struct {
	counter  Counter
	interval time.Duration
	now      func() time.Time

	stop chan struct{}
	done chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Sweeper.
type Option func(*Sweeper)

// WithInterval sets the sweep interval.
func WithInterval(d time.Duration) Option {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Sweeper over the given counter.
func New(counter Counter, opts ...Option) *Sweeper {
	s := &Sweeper{
		counter:  counter,
		interval: defaultInterval,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("sweeper")
	}
	return s
}

// Run starts the sweep loop until ctx is canceled or Shutdown is called.
func (s *Sweeper) Run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one recount and updates the gauges.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := s.now()
	counts := s.counter.PhaseCounts(ctx, now)
	for _, phase := range []model.Status{
		model.StatusUpcoming,
		model.StatusOpen,
		model.StatusJudging,
		model.StatusClosed,
		model.StatusArchived,
	} {
		metrics.UpdatePhaseCount(string(phase), counts[phase])
	}
	metrics.UpdateCompetitionCount(s.counter.Count(ctx))
	s.logger.Debug(ctx, "phase sweep complete",
		logger.Int("upcoming", counts[model.StatusUpcoming]),
		logger.Int("open", counts[model.StatusOpen]),
		logger.Int("judging", counts[model.StatusJudging]),
		logger.Int("closed", counts[model.StatusClosed]),
		logger.Int("archived", counts[model.StatusArchived]),
	)
}

// Shutdown stops the loop and waits for it to exit.
func (s *Sweeper) Shutdown(ctx context.Context) error {
	select {
	case <-s.stop:
		// Already stopped.
	default:
		close(s.stop)
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
