package gate

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultQuietWindow is the debounce interval for lock changes.
const DefaultQuietWindow = 2000 * time.Millisecond

// Cycle recomputes and publishes the load order of one profile.
type Cycle func(ctx context.Context) error

// Option configures a Gate.
type Option func(*Gate)

// WithQuietWindow overrides the debounce interval. Non-positive values are ignored.
func WithQuietWindow(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.window = d
		}
	}
}

// WithClock replaces the clock used for debouncing.
func WithClock(c Clock) Option {
	return func(g *Gate) {
		g.clock = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gate) {
		g.logger = l
	}
}

// Gate serializes reconciliation cycles for a single profile.
type Gate struct {
	name   string
	cycle  Cycle
	window time.Duration
	clock  Clock
	logger *zap.Logger

	mu       sync.Mutex
	inFlight bool
	timer    Timer
	armed    uint64
	stopped  bool
}

// New creates a gate running cycle for the named profile.
func New(name string, cycle Cycle, opts ...Option) *Gate {
	g := &Gate{
		name:   name,
		cycle:  cycle,
		window: DefaultQuietWindow,
		clock:  RealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(zap.String("profile", name))
	return g
}

// OrderChanged runs the cycle synchronously. It reports false when the call
// was dropped because a cycle is already in flight.
func (g *Gate) OrderChanged(ctx context.Context) (bool, error) {
	return g.run(ctx, "order")
}

// LocksChanged (re)arms the debounce timer.
func (g *Gate) LocksChanged() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	if g.timer != nil {
		g.timer.Stop()
	}

	g.armed++
	armed := g.armed
	g.timer = g.clock.AfterFunc(g.window, func() {
		g.fire(armed)
	})
}

// Pending reports whether a debounced cycle is scheduled.
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// Stop cancels any scheduled cycle. Later lock changes are ignored.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopped = true
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// fire runs a debounced cycle unless the timer was re-armed or stopped
// after it started firing.
func (g *Gate) fire(armed uint64) {
	g.mu.Lock()
	if g.stopped || armed != g.armed {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	g.mu.Unlock()

	_, _ = g.run(context.Background(), "locks")
}

func (g *Gate) run(ctx context.Context, trigger string) (bool, error) {
	if !g.acquire() {
		g.logger.Debug("Reconcile suppressed, cycle in flight", zap.String("trigger", trigger))
		return false, nil
	}
	defer g.release()

	start := time.Now()
	if err := g.cycle(ctx); err != nil {
		g.logger.Error("Reconcile cycle failed", zap.String("trigger", trigger), zap.Error(err))
		return true, err
	}

	g.logger.Debug("Reconcile cycle completed",
		zap.String("trigger", trigger),
		zap.Duration("took", time.Since(start)),
	)
	return true, nil
}

func (g *Gate) acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight {
		return false
	}
	g.inFlight = true
	return true
}

func (g *Gate) release() {
	g.mu.Lock()
	g.inFlight = false
	g.mu.Unlock()
}
