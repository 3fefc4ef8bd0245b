package publish

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"loadorder-manager/core/reconcile"

	"go.uber.org/zap"
)

// ErrStaleOrder is returned by Apply when the order was replaced after the
// version the caller reconciled against.
var ErrStaleOrder = errors.New("load order changed while reconciling")

// OrderState is the shared state the publisher writes to.
type OrderState interface {
	Snapshot(profile string) ([]reconcile.Entry, uint64)
	CompareAndSetOrder(profile string, version uint64, order []reconcile.Entry) bool
}

// LockReader looks up locked indices for display.
type LockReader interface {
	LockedIndexOf(profile, identifier string) (int, bool)
}

// Sink receives every published order.
type Sink interface {
	Name() string
	Publish(ctx context.Context, profile string, order []reconcile.Entry) error
}

// Publisher applies reconciled orders.
type Publisher struct {
	state  OrderState
	locks  LockReader
	sinks  []Sink
	logger *zap.Logger

	mu        sync.Mutex
	published map[string][]string
}

// New creates a publisher.
func New(state OrderState, locks LockReader, logger *zap.Logger, sinks ...Sink) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		state:     state,
		locks:     locks,
		sinks:     sinks,
		logger:    logger,
		published: make(map[string][]string),
	}
}

// Apply replaces the visible order of the profile with order, which was
// reconciled against the given state version. It returns the difference to
// the previous order; an empty plan means the state was not written. When the
// state moved past version nothing is written and ErrStaleOrder is returned.
// Sinks run whenever order differs from what they last received.
func (p *Publisher) Apply(ctx context.Context, profile string, version uint64, order []string) (reconcile.Plan, error) {
	current, v := p.state.Snapshot(profile)
	if v != version {
		return reconcile.Plan{}, ErrStaleOrder
	}
	plan := reconcile.Diff(identifiers(current), order)
	entries := reconcile.Entries(order, current)

	if !plan.IsEmpty() {
		if !p.state.CompareAndSetOrder(profile, version, entries) {
			return reconcile.Plan{}, ErrStaleOrder
		}
		p.logger.Info("Load order published",
			zap.String("profile", profile),
			zap.Int("entries", len(entries)),
			zap.Int("moved", len(plan.Moves)),
		)
	}

	if len(p.sinks) == 0 || p.isPublished(profile, order) {
		return plan, nil
	}

	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, profile, entries); err != nil {
			p.logger.Warn("Sink failed", zap.String("sink", sink.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("sink %s: %w", sink.Name(), err))
		}
	}
	if len(errs) > 0 {
		return plan, errors.Join(errs...)
	}

	p.MarkPublished(profile, order)
	return plan, nil
}

// MarkPublished records order as already delivered to the sinks, e.g. after
// it was restored from one of them.
func (p *Publisher) MarkPublished(profile string, order []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published[profile] = append([]string(nil), order...)
}

func (p *Publisher) isPublished(profile string, order []string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	last, ok := p.published[profile]
	if !ok || len(last) != len(order) {
		return false
	}
	for i := range last {
		if last[i] != order[i] {
			return false
		}
	}
	return true
}

// LockedIndexOf returns the locked index of an identifier for display.
func (p *Publisher) LockedIndexOf(profile, identifier string) (int, bool) {
	return p.locks.LockedIndexOf(profile, identifier)
}

// identifiers returns the ids of order sorted by rank.
func identifiers(order []reconcile.Entry) []string {
	sorted := append([]reconcile.Entry(nil), order...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})

	ids := make([]string, len(sorted))
	for i, e := range sorted {
		ids[i] = e.ID
	}
	return ids
}
