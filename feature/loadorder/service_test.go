package loadorder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"loadorder-manager/core/locks"
	"loadorder-manager/core/reconcile"
	"loadorder-manager/core/testutil"
	"loadorder-manager/feature/loadorder"
	"loadorder-manager/feature/loadorder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu        sync.Mutex
	published [][]string
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Publish(ctx context.Context, profile string, order []reconcile.Entry) error {
	ids := make([]string, len(order))
	for i, e := range order {
		ids[i] = e.ID
	}
	s.mu.Lock()
	s.published = append(s.published, ids)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func (s *recordingSink) last() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.published) == 0 {
		return nil
	}
	return s.published[len(s.published)-1]
}

type stubRestorer struct {
	order []reconcile.Entry
	err   error
}

func (r stubRestorer) Restore(ctx context.Context, profile string) ([]reconcile.Entry, error) {
	return r.order, r.err
}

// memLockStore is a locks.Store shared with writers outside the service.
type memLockStore struct {
	mu   sync.Mutex
	data map[string]reconcile.LockMap
}

func (s *memLockStore) Load(ctx context.Context, profile string) (reconcile.LockMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[profile].Clone(), nil
}

func (s *memLockStore) Save(ctx context.Context, profile, identifier string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data[profile] == nil {
		s.data[profile] = reconcile.LockMap{}
	}
	s.data[profile][identifier] = index
	return nil
}

func (s *memLockStore) Delete(ctx context.Context, profile, identifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[profile], identifier)
	return nil
}

func testConfig() loadorder.Config {
	return loadorder.Config{
		Game:              "oblivion",
		Profile:           "default",
		DebounceMS:        2000,
		ExcludedExtension: ".esl",
	}
}

func unlocked() []reconcile.Entry {
	return []reconcile.Entry{
		{ID: "Oblivion.esm", Enabled: true, Rank: 0},
		{ID: "a.esp", Enabled: true, Rank: 10},
		{ID: "b.esp", Enabled: true, Rank: 20},
		{ID: "c.esp", Enabled: true, Rank: 30},
		{ID: "d.esp", Enabled: true, Rank: 40},
	}
}

func newService(t *testing.T, opts ...loadorder.Option) (*loadorder.Service, *testutil.ManualClock, *recordingSink) {
	t.Helper()
	clock := testutil.NewManualClock()
	sink := &recordingSink{}
	opts = append([]loadorder.Option{loadorder.WithClock(clock), loadorder.WithSinks(sink)}, opts...)
	svc := loadorder.NewService(testConfig(), locks.NewRegistry(nil, zap.NewNop()), zap.NewNop(), opts...)
	t.Cleanup(svc.Close)
	return svc, clock, sink
}

func TestService_SetOrderAppliesLocks(t *testing.T) {
	ctx := context.Background()
	svc, clock, sink := newService(t)

	require.NoError(t, svc.SetLock(ctx, "default", "d.esp", 1))
	require.NoError(t, svc.SetOrder("default", unlocked()))

	want := []string{"Oblivion.esm", "d.esp", "a.esp", "b.esp", "c.esp"}
	assert.Equal(t, 1, sink.count(), "one publish, the re-entrant notification is dropped")
	assert.Equal(t, want, sink.last())

	resp, err := svc.Order(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"Oblivion.esm"}, resp.Natives)
	assert.Equal(t, "d.esp", resp.Entries[1].ID)
	require.NotNil(t, resp.Entries[1].LockedIndex)
	assert.Equal(t, 1, *resp.Entries[1].LockedIndex)
	assert.Nil(t, resp.Entries[2].LockedIndex)

	// The debounced run finds nothing to change.
	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, sink.count())
}

func TestService_LockChangesAreDebounced(t *testing.T) {
	ctx := context.Background()
	svc, clock, sink := newService(t)

	require.NoError(t, svc.SetOrder("default", unlocked()))
	assert.Equal(t, 1, sink.count())

	require.NoError(t, svc.SetLock(ctx, "default", "c.esp", 3))
	clock.Advance(time.Second)
	require.NoError(t, svc.SetLock(ctx, "default", "c.esp", 1))
	clock.Advance(1999 * time.Millisecond)
	assert.Equal(t, 1, sink.count(), "quiet window restarted by the second edit")

	clock.Advance(time.Millisecond)
	assert.Equal(t, 2, sink.count())
	assert.Equal(t, []string{"Oblivion.esm", "c.esp", "a.esp", "b.esp", "d.esp"}, sink.last())

	// A cleared lock keeps its place until the automatic order is recomputed.
	require.NoError(t, svc.ClearLock(ctx, "default", "c.esp"))
	clock.Advance(2 * time.Second)
	assert.Equal(t, 2, sink.count())

	require.NoError(t, svc.SetOrder("default", unlocked()))
	assert.Equal(t, 3, sink.count())
	assert.Equal(t, []string{"Oblivion.esm", "a.esp", "b.esp", "c.esp", "d.esp"}, sink.last())
}

func TestService_Natives(t *testing.T) {
	ctx := context.Background()
	svc, _, sink := newService(t)

	// Without natives the fixed prefix is empty and index 0 is reachable.
	svc.SetNatives("default", nil)
	require.NoError(t, svc.SetLock(ctx, "default", "d.esp", 0))
	require.NoError(t, svc.SetOrder("default", unlocked()))

	assert.Equal(t, []string{"d.esp", "Oblivion.esm", "a.esp", "b.esp", "c.esp"}, sink.last())
}

func TestService_SetOrderValidation(t *testing.T) {
	svc, _, sink := newService(t)

	tests := []struct {
		name  string
		order []reconcile.Entry
	}{
		{"Empty Identifier", []reconcile.Entry{{ID: "", Enabled: true}}},
		{"Duplicate", []reconcile.Entry{{ID: "a.esp", Rank: 0}, {ID: "a.esp", Rank: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.SetOrder("default", tt.order)
			assert.ErrorIs(t, err, loadorder.ErrInvalidOrder)
		})
	}
	assert.Equal(t, 0, sink.count())
}

func TestService_LockedIndexOf(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.LockedIndexOf(ctx, "default", "a.esp")
	assert.ErrorIs(t, err, loadorder.ErrNotLocked)

	require.NoError(t, svc.SetLock(ctx, "default", "a.esp", 7))
	idx, err := svc.LockedIndexOf(ctx, "default", "a.esp")
	assert.NoError(t, err)
	assert.Equal(t, 7, idx)

	assert.ErrorIs(t, svc.SetLock(ctx, "default", "a.esp", -1), locks.ErrInvalidIndex)
}

func TestService_Reconcile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	require.NoError(t, svc.SetOrder("default", unlocked()))
	require.NoError(t, svc.SetLock(ctx, "default", "a.esp", 4))

	resp, err := svc.Reconcile(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"Oblivion.esm", "b.esp", "c.esp", "d.esp", "a.esp"}, resp.Order)
	assert.Len(t, resp.Plan.Moves, 4)

	resp, err = svc.Reconcile(ctx, "default")
	require.NoError(t, err)
	assert.True(t, resp.Plan.IsEmpty(), "reconciling twice changes nothing")
}

func TestService_ReconcileRereadsPersistedLocks(t *testing.T) {
	ctx := context.Background()
	store := &memLockStore{data: map[string]reconcile.LockMap{}}
	sink := &recordingSink{}
	svc := loadorder.NewService(testConfig(), locks.NewRegistry(store, zap.NewNop()), zap.NewNop(),
		loadorder.WithClock(testutil.NewManualClock()),
		loadorder.WithSinks(sink),
	)
	t.Cleanup(svc.Close)

	require.NoError(t, svc.SetOrder("default", unlocked()))
	assert.Equal(t, []string{"Oblivion.esm", "a.esp", "b.esp", "c.esp", "d.esp"}, sink.last())

	// The lock command writes to the database while the server runs.
	require.NoError(t, store.Save(ctx, "default", "d.esp", 1))

	resp, err := svc.Reconcile(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []string{"Oblivion.esm", "d.esp", "a.esp", "b.esp", "c.esp"}, resp.Order)
	assert.Equal(t, resp.Order, sink.last())

	idx, err := svc.LockedIndexOf(ctx, "default", "d.esp")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Published Order", func(t *testing.T) {
		svc, _, sink := newService(t, loadorder.WithRestorer(stubRestorer{order: []reconcile.Entry{
			{ID: "Oblivion.esm", Enabled: true, Rank: 0},
			{ID: "x.esp", Enabled: false, Rank: 1},
		}}))

		require.NoError(t, svc.Restore(ctx, "default"))
		resp, err := svc.Order(ctx, "default")
		require.NoError(t, err)
		assert.Len(t, resp.Entries, 2)
		assert.False(t, resp.Entries[1].Enabled)
		assert.Equal(t, 0, sink.count(), "restoring an already published order republishes nothing")
	})

	t.Run("Nothing Published", func(t *testing.T) {
		svc, _, _ := newService(t, loadorder.WithRestorer(stubRestorer{}))
		assert.NoError(t, svc.Restore(ctx, "default"))
		assert.Empty(t, svc.Profiles())
	})

	t.Run("Error", func(t *testing.T) {
		svc, _, _ := newService(t, loadorder.WithRestorer(stubRestorer{err: errors.New("offline")}))
		assert.ErrorContains(t, svc.Restore(ctx, "default"), "offline")
	})

	t.Run("No Restorer", func(t *testing.T) {
		svc, _, _ := newService(t)
		assert.NoError(t, svc.Restore(ctx, "default"))
	})
}

func TestService_Close(t *testing.T) {
	ctx := context.Background()
	svc, clock, sink := newService(t)
	require.NoError(t, svc.SetOrder("default", unlocked()))

	require.NoError(t, svc.SetLock(ctx, "default", "d.esp", 1))
	assert.Equal(t, 1, clock.Pending())

	svc.Close()
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, sink.count())
}

func TestPreview(t *testing.T) {
	order := []reconcile.Entry{
		{ID: "Skyrim.esm", Enabled: true, Rank: 0},
		{ID: "a.esp", Enabled: true, Rank: 1},
		{ID: "b.esp", Enabled: true, Rank: 2},
		{ID: "c.esp", Enabled: true, Rank: 3},
	}
	natives := []string{"Skyrim.esm", "Update.esm"}
	zero := 0

	tests := []struct {
		name       string
		req        models.PreviewRequest
		wantOrder  []string
		wantPrefix int
	}{
		{
			name:       "Prefix From Default Natives",
			req:        models.PreviewRequest{Order: order, Locks: reconcile.LockMap{"c.esp": 1}},
			wantOrder:  []string{"Skyrim.esm", "c.esp", "a.esp", "b.esp"},
			wantPrefix: 1,
		},
		{
			name:       "Explicit Prefix",
			req:        models.PreviewRequest{Order: order, Locks: reconcile.LockMap{"c.esp": 0}, FixedPrefix: &zero},
			wantOrder:  []string{"c.esp", "Skyrim.esm", "a.esp", "b.esp"},
			wantPrefix: 0,
		},
		{
			name:       "Request Natives",
			req:        models.PreviewRequest{Order: order, Locks: reconcile.LockMap{"c.esp": 0}, Natives: []string{}},
			wantOrder:  []string{"c.esp", "Skyrim.esm", "a.esp", "b.esp"},
			wantPrefix: 0,
		},
		{
			name:       "No Locks",
			req:        models.PreviewRequest{Order: order},
			wantOrder:  []string{"Skyrim.esm", "a.esp", "b.esp", "c.esp"},
			wantPrefix: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loadorder.Preview(tt.req, natives, ".esl")
			assert.Equal(t, tt.wantOrder, got.Order)
			assert.Equal(t, tt.wantPrefix, got.FixedPrefix)
		})
	}
}
