package locks

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"loadorder-manager/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidIndex is returned when a locked index is negative.
	ErrInvalidIndex = errors.New("locked index must be a non-negative integer")
	// ErrInvalidIdentifier is returned for an empty identifier or profile.
	ErrInvalidIdentifier = errors.New("identifier and profile must not be empty")
)

// Listener is notified after the locks of a profile changed.
type Listener func(profile string)

// Registry holds the current locks of every profile.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]reconcile.LockMap
	store    Store
	sf       singleflight.Group
	logger   *zap.Logger

	listenMu  sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewRegistry creates a registry. A nil store keeps locks in memory only.
func NewRegistry(store Store, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		profiles:  make(map[string]reconcile.LockMap),
		store:     store,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (r *Registry) Subscribe(l Listener) func() {
	r.listenMu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = l
	r.listenMu.Unlock()

	return func() {
		r.listenMu.Lock()
		delete(r.listeners, id)
		r.listenMu.Unlock()
	}
}

// Load returns a copy of the profile's locks, reading them from the store
// the first time the profile is seen.
func (r *Registry) Load(ctx context.Context, profile string) (reconcile.LockMap, error) {
	if err := r.hydrate(ctx, profile); err != nil {
		return nil, err
	}
	return r.Get(profile), nil
}

// Get returns a copy of the in-memory locks of the profile.
func (r *Registry) Get(profile string) reconcile.LockMap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[profile].Clone()
}

// LockedIndexOf returns the requested index of an identifier, if locked.
func (r *Registry) LockedIndexOf(profile, identifier string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.profiles[profile][identifier]
	return idx, ok
}

// Set locks an identifier to an absolute index.
func (r *Registry) Set(ctx context.Context, profile, identifier string, index int) error {
	return r.Update(ctx, profile, identifier, &index)
}

// Clear removes the lock of an identifier. Clearing an unlocked identifier is a no-op.
func (r *Registry) Clear(ctx context.Context, profile, identifier string) error {
	return r.Update(ctx, profile, identifier, nil)
}

// Update sets the lock of an identifier, or clears it when index is nil.
func (r *Registry) Update(ctx context.Context, profile, identifier string, index *int) error {
	if profile == "" || identifier == "" {
		return ErrInvalidIdentifier
	}
	if index != nil && *index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, *index)
	}

	if err := r.hydrate(ctx, profile); err != nil {
		return err
	}

	if index == nil {
		if _, ok := r.LockedIndexOf(profile, identifier); !ok {
			return nil
		}
	} else if current, ok := r.LockedIndexOf(profile, identifier); ok && current == *index {
		return nil
	}

	if r.store != nil {
		var err error
		if index == nil {
			err = r.store.Delete(ctx, profile, identifier)
		} else {
			err = r.store.Save(ctx, profile, identifier, *index)
		}
		if err != nil {
			return err
		}
	}

	r.mu.Lock()
	locks, ok := r.profiles[profile]
	if !ok {
		locks = make(reconcile.LockMap)
		r.profiles[profile] = locks
	}
	if index == nil {
		delete(locks, identifier)
	} else {
		locks[identifier] = *index
	}
	r.mu.Unlock()

	if index == nil {
		r.logger.Debug("Lock cleared", zap.String("profile", profile), zap.String("identifier", identifier))
	} else {
		r.logger.Debug("Lock set", zap.String("profile", profile), zap.String("identifier", identifier), zap.Int("index", *index))
	}

	r.notify(profile)
	return nil
}

// Refresh rereads the locks of a profile from the store, replacing what is
// in memory. Listeners are notified when the locks changed. Without a store
// it does nothing.
func (r *Registry) Refresh(ctx context.Context, profile string) (bool, error) {
	if r.store == nil {
		return false, nil
	}

	locks, err := r.store.Load(ctx, profile)
	if err != nil {
		return false, fmt.Errorf("failed to refresh profile %s: %w", profile, err)
	}
	if locks == nil {
		locks = make(reconcile.LockMap)
	}

	r.mu.Lock()
	current, known := r.profiles[profile]
	changed := !known || !maps.Equal(current, locks)
	r.profiles[profile] = locks
	r.mu.Unlock()

	if !changed {
		return false, nil
	}
	r.logger.Debug("Locks refreshed", zap.String("profile", profile), zap.Int("count", len(locks)))
	r.notify(profile)
	return true, nil
}

// notify calls listeners outside of any registry lock.
func (r *Registry) notify(profile string) {
	r.listenMu.Lock()
	listeners := make([]Listener, 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	r.listenMu.Unlock()

	for _, l := range listeners {
		l(profile)
	}
}

// hydrate loads a profile from the store once. Concurrent callers share the load.
func (r *Registry) hydrate(ctx context.Context, profile string) error {
	r.mu.RLock()
	_, ok := r.profiles[profile]
	r.mu.RUnlock()
	if ok || r.store == nil {
		return nil
	}

	_, err, _ := r.sf.Do(profile, func() (interface{}, error) {
		r.mu.RLock()
		_, ok := r.profiles[profile]
		r.mu.RUnlock()
		if ok {
			return nil, nil
		}

		locks, err := r.store.Load(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("failed to hydrate profile %s: %w", profile, err)
		}

		r.mu.Lock()
		if _, ok := r.profiles[profile]; !ok {
			r.profiles[profile] = locks
		}
		r.mu.Unlock()

		r.logger.Debug("Locks hydrated", zap.String("profile", profile), zap.Int("count", len(locks)))
		return nil, nil
	})
	return err
}
