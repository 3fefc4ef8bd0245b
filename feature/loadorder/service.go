package loadorder

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"loadorder-manager/core/games"
	"loadorder-manager/core/gate"
	"loadorder-manager/core/locks"
	"loadorder-manager/core/publish"
	"loadorder-manager/core/reconcile"
	"loadorder-manager/core/state"
	"loadorder-manager/feature/loadorder/models"

	"go.uber.org/zap"
)

var (
	// ErrInvalidOrder is returned for orders with empty or duplicate identifiers.
	ErrInvalidOrder = errors.New("invalid load order")
	// ErrCycleInFlight is returned when a forced cycle was dropped.
	ErrCycleInFlight = errors.New("a reconcile cycle is already running for this profile")
	// ErrNotLocked is returned when an identifier has no lock.
	ErrNotLocked = errors.New("identifier is not locked")
)

// maxCycleAttempts bounds how often a cycle starts over after the order was
// replaced while it was reconciling.
const maxCycleAttempts = 3

// orderStore is the per-profile state the service reconciles.
type orderStore interface {
	publish.OrderState
	Order(profile string) []reconcile.Entry
	Natives(profile string) []string
	Profiles() []string
	SetOrder(profile string, order []reconcile.Entry)
	SetNatives(profile string, natives []string)
	Subscribe(l state.OrderListener) func()
}

// Restorer reads the last published order of a profile.
type Restorer interface {
	Restore(ctx context.Context, profile string) ([]reconcile.Entry, error)
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the clock driving the lock debounce.
func WithClock(c gate.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithSinks adds publish sinks.
func WithSinks(sinks ...publish.Sink) Option {
	return func(s *Service) {
		s.sinks = append(s.sinks, sinks...)
	}
}

// WithRestorer sets where previously published orders are read from.
func WithRestorer(r Restorer) Option {
	return func(s *Service) {
		s.restorer = r
	}
}

// Service keeps the published load order of every profile in line with its
// automatic order and its locks.
type Service struct {
	cfg       Config
	game      games.Game
	state     orderStore
	registry  *locks.Registry
	publisher *publish.Publisher
	logger    *zap.Logger

	clock    gate.Clock
	sinks    []publish.Sink
	restorer Restorer

	mu     sync.Mutex
	gates  map[string]*gate.Gate
	plans  map[string]reconcile.Plan
	closed bool

	unsubscribe []func()
}

// NewService creates the service and subscribes it to order and lock changes.
func NewService(cfg Config, registry *locks.Registry, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	game, _ := games.Lookup(cfg.Game)

	s := &Service{
		cfg:      cfg,
		game:     game,
		state:    state.NewStore(),
		registry: registry,
		logger:   logger,
		clock:    gate.RealClock(),
		gates:    make(map[string]*gate.Gate),
		plans:    make(map[string]reconcile.Plan),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.publisher = publish.New(s.state, registry, logger, s.sinks...)

	s.unsubscribe = append(s.unsubscribe,
		s.state.Subscribe(func(profile string, _ []reconcile.Entry) {
			if g := s.gateFor(profile); g != nil {
				_, _ = g.OrderChanged(context.Background())
			}
		}),
		registry.Subscribe(func(profile string) {
			if g := s.gateFor(profile); g != nil {
				g.LocksChanged()
			}
		}),
	)

	return s
}

// Order returns the published order of a profile with its locks.
func (s *Service) Order(ctx context.Context, profile string) (*models.OrderResponse, error) {
	lockMap, err := s.registry.Load(ctx, profile)
	if err != nil {
		return nil, err
	}

	order := s.state.Order(profile)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Rank < order[j].Rank
	})

	entries := make([]models.EntryView, len(order))
	for i, e := range order {
		entries[i] = models.EntryView{ID: e.ID, Enabled: e.Enabled, Position: i}
		if idx, ok := s.publisher.LockedIndexOf(profile, e.ID); ok {
			entries[i].LockedIndex = &idx
		}
	}

	natives := s.state.Natives(profile)
	if natives == nil {
		natives = []string{}
	}
	return &models.OrderResponse{
		Profile: profile,
		Entries: entries,
		Locks:   lockMap,
		Natives: natives,
	}, nil
}

// SetOrder replaces the automatically computed order of a profile. The
// change is reconciled and published before SetOrder returns.
func (s *Service) SetOrder(profile string, order []reconcile.Entry) error {
	if err := validateOrder(order); err != nil {
		return err
	}
	s.gateFor(profile)
	s.state.SetOrder(profile, order)
	return nil
}

// SetNatives replaces the native plugin list of a profile. It takes effect
// on the next cycle.
func (s *Service) SetNatives(profile string, natives []string) {
	s.gateFor(profile)
	s.state.SetNatives(profile, natives)
}

// Locks returns the lock map of a profile.
func (s *Service) Locks(ctx context.Context, profile string) (reconcile.LockMap, error) {
	return s.registry.Load(ctx, profile)
}

// LockedIndexOf returns the locked index of an identifier.
func (s *Service) LockedIndexOf(ctx context.Context, profile, identifier string) (int, error) {
	if _, err := s.registry.Load(ctx, profile); err != nil {
		return 0, err
	}
	idx, ok := s.registry.LockedIndexOf(profile, identifier)
	if !ok {
		return 0, ErrNotLocked
	}
	return idx, nil
}

// SetLock locks an identifier. The order is republished after the quiet window.
func (s *Service) SetLock(ctx context.Context, profile, identifier string, index int) error {
	return s.registry.Set(ctx, profile, identifier, index)
}

// ClearLock removes the lock of an identifier.
func (s *Service) ClearLock(ctx context.Context, profile, identifier string) error {
	return s.registry.Clear(ctx, profile, identifier)
}

// Preview reconciles arbitrary input without touching any profile.
func (s *Service) Preview(req models.PreviewRequest) models.PreviewResponse {
	return Preview(req, s.game.Natives, s.cfg.ExcludedExtension)
}

// Reconcile rereads the persisted locks and runs a cycle for the profile now.
func (s *Service) Reconcile(ctx context.Context, profile string) (*models.ReconcileResponse, error) {
	g := s.gateFor(profile)
	if g == nil {
		return nil, fmt.Errorf("service is closed")
	}

	// Locks may have been edited in the store by another process.
	if _, err := s.registry.Refresh(ctx, profile); err != nil {
		return nil, err
	}

	ran, err := g.OrderChanged(ctx)
	if err != nil {
		return nil, err
	}
	if !ran {
		return nil, ErrCycleInFlight
	}

	s.mu.Lock()
	plan := s.plans[profile]
	s.mu.Unlock()

	order := s.state.Order(profile)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Rank < order[j].Rank
	})
	ids := make([]string, len(order))
	for i, e := range order {
		ids[i] = e.ID
	}

	return &models.ReconcileResponse{Profile: profile, Plan: plan, Order: ids}, nil
}

// Restore loads the last published order of a profile, if a restorer is set
// and something was published before.
func (s *Service) Restore(ctx context.Context, profile string) error {
	if s.restorer == nil {
		return nil
	}
	order, err := s.restorer.Restore(ctx, profile)
	if err != nil {
		return fmt.Errorf("failed to restore profile %s: %w", profile, err)
	}
	if len(order) == 0 {
		return nil
	}

	ids := make([]string, len(order))
	for i, e := range order {
		ids[i] = e.ID
	}
	s.publisher.MarkPublished(profile, ids)

	s.logger.Info("Restored published load order", zap.String("profile", profile), zap.Int("entries", len(order)))
	return s.SetOrder(profile, order)
}

// Profiles returns the profiles that have state.
func (s *Service) Profiles() []string {
	return s.state.Profiles()
}

// Close stops all pending debounce timers and detaches from change sources.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	gates := make([]*gate.Gate, 0, len(s.gates))
	for _, g := range s.gates {
		gates = append(gates, g)
	}
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	for _, g := range gates {
		g.Stop()
	}
	for _, u := range unsubscribe {
		u()
	}
}

// cycle reads order, natives and locks fresh, reconciles and publishes. A
// cycle that lost the order to a concurrent write starts over with the newer
// order instead of overwriting it.
func (s *Service) cycle(profile string) gate.Cycle {
	return func(ctx context.Context) error {
		for attempt := 1; ; attempt++ {
			plan, err := s.reconcileOnce(ctx, profile)
			if errors.Is(err, publish.ErrStaleOrder) {
				if attempt < maxCycleAttempts {
					s.logger.Debug("Load order replaced during reconcile, starting over",
						zap.String("profile", profile),
						zap.Int("attempt", attempt),
					)
					continue
				}
				return fmt.Errorf("profile %s: %w", profile, err)
			}

			s.mu.Lock()
			s.plans[profile] = plan
			s.mu.Unlock()

			return err
		}
	}
}

func (s *Service) reconcileOnce(ctx context.Context, profile string) (reconcile.Plan, error) {
	lockMap, err := s.registry.Load(ctx, profile)
	if err != nil {
		return reconcile.Plan{}, err
	}

	order, version := s.state.Snapshot(profile)
	prefix := reconcile.FixedPrefixCount(order, s.state.Natives(profile), s.cfg.ExcludedExtension)
	final := reconcile.ReconcileWithOptions(order, lockMap, reconcile.Options{
		FixedPrefix:       prefix,
		ExcludedExtension: s.cfg.ExcludedExtension,
	})

	return s.publisher.Apply(ctx, profile, version, final)
}

// gateFor returns the gate of a profile, creating it and seeding the game's
// natives on first use. It returns nil once the service is closed.
func (s *Service) gateFor(profile string) *gate.Gate {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	if g, ok := s.gates[profile]; ok {
		return g
	}

	g := gate.New(profile, s.cycle(profile),
		gate.WithClock(s.clock),
		gate.WithQuietWindow(s.cfg.QuietWindow()),
		gate.WithLogger(s.logger),
	)
	s.gates[profile] = g

	if s.state.Natives(profile) == nil && len(s.game.Natives) > 0 {
		s.state.SetNatives(profile, s.game.Natives)
	}
	return g
}

// Preview reconciles req. The fixed prefix falls back to natives counted in
// the order when req does not set it.
func Preview(req models.PreviewRequest, defaultNatives []string, excludedExt string) models.PreviewResponse {
	natives := req.Natives
	if natives == nil {
		natives = defaultNatives
	}

	prefix := reconcile.FixedPrefixCount(req.Order, natives, excludedExt)
	if req.FixedPrefix != nil && *req.FixedPrefix >= 0 {
		prefix = *req.FixedPrefix
	}

	final := reconcile.ReconcileWithOptions(req.Order, req.Locks, reconcile.Options{
		FixedPrefix:       prefix,
		ExcludedExtension: excludedExt,
	})
	return models.PreviewResponse{Order: final, FixedPrefix: prefix}
}

func validateOrder(order []reconcile.Entry) error {
	seen := make(map[string]struct{}, len(order))
	for _, e := range order {
		if e.ID == "" {
			return fmt.Errorf("%w: empty identifier", ErrInvalidOrder)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate identifier %s", ErrInvalidOrder, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}
