// Package scanner implements the due-event scanner: a single background
// loop that periodically finds events whose scheduled minute has arrived
// and marks each one triggered exactly once.
//
// The scanner holds no locks shared with request handlers. The only
// synchronization point is the store's conditional trigger write: a delete
// or update racing a scan cycle either wins (the trigger write affects no
// row and is skipped) or loses (the event is marked triggered and later
// user writes still succeed).
package scanner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/chronoflow/chronoflow/internal/models"
	"github.com/chronoflow/chronoflow/internal/storage"
)

// DefaultInterval is the default cadence between scan cycles.
const DefaultInterval = 10 * time.Second

// Scanner periodically marks due events as triggered.
//
// Start and Stop are idempotent; at most one loop runs per Scanner. Events
// are matched at minute granularity against the wall clock, so a minute
// that passes while the process is down is never backfilled.
type Scanner struct {
	store    storage.EventStore
	interval time.Duration
	logger   *slog.Logger

	// now is the clock source; replaceable in tests.
	now func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithInterval overrides the scan cadence.
func WithInterval(interval time.Duration) Option {
	return func(s *Scanner) {
		if interval > 0 {
			s.interval = interval
		}
	}
}

// WithClock overrides the wall clock used to compute the match window.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) {
		s.now = now
	}
}

// New creates a Scanner over the given event store.
func New(store storage.EventStore, logger *slog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		store:    store,
		interval: DefaultInterval,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the scan loop. Starting an already-running scanner is a
// no-op, so the process holds exactly one active loop.
func (s *Scanner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true

	go s.run(ctx)

	s.logger.Info("Due-event scanner started", "interval", s.interval)
}

// Stop signals the loop to exit and waits for it to finish. The loop
// observes the signal at its cadence wait, so Stop returns within one
// interval. Stopping a stopped scanner is a no-op; Stop is safe to call
// multiple times.
func (s *Scanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.running = false

	s.logger.Info("Due-event scanner stopped")
}

// run is the main scan loop. Each tick performs one cycle; cycle errors are
// logged and the loop continues. The loop exits only on context cancel.
func (s *Scanner) run(ctx context.Context) {
	defer close(s.done)

	// First cycle runs immediately so events due in the startup minute
	// are not deferred a full tick.
	s.cycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

// cycle performs one scan: find events due in the current minute and
// conditionally mark each triggered. It returns the number of events this
// cycle transitioned.
func (s *Scanner) cycle(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	scanCycles.Inc()

	// "now" is computed once per cycle; the window is the current minute.
	now := s.now()
	today := now.Format(models.DateLayout)
	minute := now.Format("15:04")

	due, err := s.store.FindDueEvents(ctx, today, minute)
	if err != nil {
		scanErrors.Inc()
		s.logger.Error("Due-event query failed", "error", err)
		return 0 // next tick is the retry
	}

	triggered := 0
	for _, event := range due {
		if ctx.Err() != nil {
			return triggered
		}

		applied, err := s.store.MarkTriggered(ctx, event.ID, now)
		if err != nil {
			scanErrors.Inc()
			s.logger.Error("Trigger write failed", "event_id", event.ID, "error", err)
			continue
		}
		if !applied {
			// Lost the race to a delete or an earlier trigger; this
			// is an expected outcome, not an error.
			continue
		}

		triggered++
		eventsTriggered.Inc()
		s.logger.Info("Event triggered",
			"event_id", event.ID,
			"user_id", event.UserID,
			"title", event.Title,
			"scheduled", event.Date+" "+event.Time,
		)
	}

	return triggered
}
