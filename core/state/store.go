package state

import (
	"sort"
	"sync"

	"loadorder-manager/core/reconcile"
)

// OrderListener is called after the order of a profile was replaced.
type OrderListener func(profile string, order []reconcile.Entry)

type profileState struct {
	order   []reconcile.Entry
	natives []string
	// version counts order writes.
	version uint64
}

// Store keeps load order state for every profile in memory.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*profileState

	listenMu  sync.Mutex
	listeners map[int]OrderListener
	nextID    int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		profiles:  make(map[string]*profileState),
		listeners: make(map[int]OrderListener),
	}
}

// Order returns a copy of the current order of the profile.
func (s *Store) Order(profile string) []reconcile.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profile]
	if !ok {
		return nil
	}
	return append([]reconcile.Entry(nil), p.order...)
}

// Snapshot returns a copy of the current order of the profile together with
// its version. The version changes on every order write.
func (s *Store) Snapshot(profile string) ([]reconcile.Entry, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profile]
	if !ok {
		return nil, 0
	}
	return append([]reconcile.Entry(nil), p.order...), p.version
}

// Natives returns a copy of the native plugin list of the profile.
func (s *Store) Natives(profile string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profile]
	if !ok {
		return nil
	}
	return append([]string(nil), p.natives...)
}

// Profiles returns the known profiles in ascending order.
func (s *Store) Profiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetOrder replaces the order of the profile and notifies subscribers.
func (s *Store) SetOrder(profile string, order []reconcile.Entry) {
	stored := append([]reconcile.Entry(nil), order...)

	s.mu.Lock()
	p := s.profile(profile)
	p.order = stored
	p.version++
	s.mu.Unlock()

	s.notify(profile, stored)
}

// CompareAndSetOrder replaces the order of the profile only if it is still at
// version. Subscribers are notified only when the order was replaced.
func (s *Store) CompareAndSetOrder(profile string, version uint64, order []reconcile.Entry) bool {
	stored := append([]reconcile.Entry(nil), order...)

	s.mu.Lock()
	p := s.profile(profile)
	if p.version != version {
		s.mu.Unlock()
		return false
	}
	p.order = stored
	p.version++
	s.mu.Unlock()

	s.notify(profile, stored)
	return true
}

// notify calls every listener in subscription order on the calling goroutine.
func (s *Store) notify(profile string, stored []reconcile.Entry) {
	s.listenMu.Lock()
	listeners := make([]OrderListener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenMu.Unlock()

	for _, l := range listeners {
		l(profile, append([]reconcile.Entry(nil), stored...))
	}
}

// SetNatives replaces the native plugin list of the profile.
func (s *Store) SetNatives(profile string, natives []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile(profile).natives = append([]string(nil), natives...)
}

// Subscribe registers an order listener and returns a function removing it.
func (s *Store) Subscribe(l OrderListener) func() {
	s.listenMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenMu.Unlock()

	return func() {
		s.listenMu.Lock()
		delete(s.listeners, id)
		s.listenMu.Unlock()
	}
}

// profile returns the state of a profile, creating it. Callers hold mu.
func (s *Store) profile(name string) *profileState {
	p, ok := s.profiles[name]
	if !ok {
		p = &profileState{}
		s.profiles[name] = p
	}
	return p
}
