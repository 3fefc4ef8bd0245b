package reconcile

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

// entries builds an order where every identifier is enabled and ranked by position.
func entries(ids ...string) []Entry {
	out := make([]Entry, len(ids))
	for i, id := range ids {
		out[i] = Entry{ID: id, Enabled: true, Rank: i}
	}
	return out
}

// TestReconcile_Unlocked tests that an empty lock map returns the rank order.
func TestReconcile_Unlocked(t *testing.T) {
	order := []Entry{
		{ID: "c", Enabled: true, Rank: 7},
		{ID: "a", Enabled: true, Rank: 0},
		{ID: "b", Enabled: false, Rank: 3},
		{ID: "d", Enabled: true, Rank: 3},
	}

	assert.Equal(t, []string{"a", "b", "d", "c"}, Reconcile(order, nil, 0))
	assert.Equal(t, []string{"a", "b", "d", "c"}, Reconcile(order, LockMap{}, 5))
	assert.Empty(t, Reconcile(nil, nil, 0))
}

// TestReconcile_Placement tests locked placement against hand-computed orders.
func TestReconcile_Placement(t *testing.T) {
	tests := []struct {
		name   string
		order  []Entry
		locks  LockMap
		prefix int
		want   []string
	}{
		{
			name:  "lock to front",
			order: entries("a", "b", "c", "d"),
			locks: LockMap{"d": 0},
			want:  []string{"d", "a", "b", "c"},
		},
		{
			name:   "lock before prefix collapses after it",
			order:  entries("a", "b", "c", "d"),
			locks:  LockMap{"d": 0},
			prefix: 1,
			want:   []string{"a", "d", "b", "c"},
		},
		{
			name:  "lock in the middle",
			order: entries("a", "b", "c", "d"),
			locks: LockMap{"a": 2},
			want:  []string{"b", "c", "a", "d"},
		},
		{
			name:   "front collapse keeps ascending key order",
			order:  entries("n1", "n2", "n3", "f1", "f2", "x"),
			locks:  LockMap{"x": 0, "f2": 1},
			prefix: 3,
			want:   []string{"n1", "n2", "n3", "x", "f2", "f1"},
		},
		{
			name:  "adjacent locks chain",
			order: entries("a", "b", "c", "x", "y"),
			locks: LockMap{"x": 1, "y": 2},
			want:  []string{"a", "x", "y", "b", "c"},
		},
		{
			name:  "index beyond range is appended",
			order: entries("a", "d", "b", "c"),
			locks: LockMap{"d": 50},
			want:  []string{"a", "b", "c", "d"},
		},
		{
			name: "disabled entries do not count",
			order: []Entry{
				{ID: "x", Enabled: true, Rank: 0},
				{ID: "a", Enabled: true, Rank: 1},
				{ID: "b", Enabled: false, Rank: 2},
				{ID: "c", Enabled: true, Rank: 3},
				{ID: "d", Enabled: true, Rank: 4},
			},
			locks: LockMap{"x": 2},
			want:  []string{"a", "b", "c", "x", "d"},
		},
		{
			name:  "light plugins do not count",
			order: entries("x.esp", "a.esp", "light.ESL", "c.esp", "d.esp"),
			locks: LockMap{"x.esp": 2},
			want:  []string{"a.esp", "light.ESL", "c.esp", "x.esp", "d.esp"},
		},
		{
			name:  "locked light plugin takes no load index",
			order: entries("a.esp", "b.esp", "c.esp", "d.esp", "x.esl", "y.esp"),
			locks: LockMap{"x.esl": 1, "y.esp": 2},
			want:  []string{"a.esp", "x.esl", "b.esp", "y.esp", "c.esp", "d.esp"},
		},
		{
			name: "locked disabled entry takes no load index",
			order: []Entry{
				{ID: "a", Enabled: true, Rank: 0},
				{ID: "b", Enabled: true, Rank: 1},
				{ID: "c", Enabled: true, Rank: 2},
				{ID: "d", Enabled: true, Rank: 3},
				{ID: "x", Enabled: false, Rank: 4},
				{ID: "y", Enabled: true, Rank: 5},
			},
			locks: LockMap{"x": 1, "y": 2},
			want:  []string{"a", "x", "b", "y", "c", "d"},
		},
		{
			name:   "collapsed light plugin takes no load index",
			order:  entries("n.esm", "a.esp", "b.esp", "x.esl", "y.esp"),
			locks:  LockMap{"x.esl": 0, "y.esp": 2},
			prefix: 1,
			want:   []string{"n.esm", "x.esl", "a.esp", "y.esp", "b.esp"},
		},
		{
			name:  "conflicting index displaces the loser to the end",
			order: entries("a", "b", "c", "d"),
			locks: LockMap{"b": 0, "c": 0},
			want:  []string{"c", "a", "d", "b"},
		},
		{
			name:  "unknown identifier is ignored",
			order: entries("a", "b"),
			locks: LockMap{"zzz": 1},
			want:  []string{"a", "b"},
		},
		{
			name:   "prefix larger than the order",
			order:  entries("a", "b", "x"),
			locks:  LockMap{"x": 0},
			prefix: 5,
			want:   []string{"a", "b", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.order, tt.locks, tt.prefix))
		})
	}
}

// TestReconcile_NumericKeyOrder tests that indices >= 10 are not ordered textually.
func TestReconcile_NumericKeyOrder(t *testing.T) {
	var ids []string
	for i := 0; i < 12; i++ {
		ids = append(ids, fmt.Sprintf("e%02d", i))
	}
	ids = append(ids, "x", "y")

	got := Reconcile(entries(ids...), LockMap{"x": 10, "y": 2}, 0)

	want := []string{"e00", "e01", "y", "e02", "e03", "e04", "e05", "e06", "e07", "e08", "x", "e09", "e10", "e11"}
	assert.Equal(t, want, got)
}

// TestReconcileWithOptions_NoExclusion tests that an empty extension counts every enabled entry.
func TestReconcileWithOptions_NoExclusion(t *testing.T) {
	order := entries("x.esp", "a.esp", "light.esl", "c.esp")
	got := ReconcileWithOptions(order, LockMap{"x.esp": 2}, Options{})
	assert.Equal(t, []string{"a.esp", "light.esl", "x.esp", "c.esp"}, got)
}

// TestReconcile_Properties checks set preservation, idempotence, locked
// placement and front collapse on generated inputs.
func TestReconcile_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	eligible := func(e Entry) bool {
		return e.Enabled && !hasExtension(e.ID, DefaultExcludedExtension)
	}

	for run := 0; run < 200; run++ {
		n := rng.Intn(20)
		order := make([]Entry, n)
		for i := range order {
			id := fmt.Sprintf("p%02d.esp", i)
			if rng.Intn(5) == 0 {
				id = fmt.Sprintf("p%02d.esl", i)
			}
			order[i] = Entry{ID: id, Enabled: rng.Intn(4) != 0, Rank: rng.Intn(30)}
		}

		locks := LockMap{}
		if n > 0 {
			for i, count := 0, rng.Intn(6); i < count; i++ {
				locks[order[rng.Intn(n)].ID] = rng.Intn(25)
			}
		}
		if rng.Intn(10) == 0 {
			locks["missing.esp"] = rng.Intn(5)
		}
		prefix := rng.Intn(4)

		out := Reconcile(order, locks, prefix)

		want := make([]string, 0, n)
		for _, e := range order {
			want = append(want, e.ID)
		}
		got := append([]string(nil), out...)
		sort.Strings(want)
		sort.Strings(got)
		if !assert.Equal(t, want, got, "run %d: set not preserved", run) {
			return
		}

		again := Reconcile(Entries(out, order), locks, prefix)
		if !assert.Equal(t, out, again, "run %d: not idempotent", run) {
			return
		}

		byID := make(map[string]Entry, n)
		for _, e := range order {
			byID[e.ID] = e
		}

		// The greatest identifier wins a contested index.
		winners := map[int]string{}
		for id, k := range locks {
			if _, ok := byID[id]; !ok {
				continue
			}
			if cur, taken := winners[k]; !taken || id > cur {
				winners[k] = id
			}
		}
		keys := make([]int, 0, len(winners))
		for k := range winners {
			keys = append(keys, k)
		}
		sort.Ints(keys)

		var working []Entry
		for _, e := range sortByRank(order) {
			if _, locked := locks[e.ID]; !locked {
				working = append(working, e)
			}
		}
		prefixLen, counted := 0, 0
		for counted < prefix && prefixLen < len(working) {
			if eligible(working[prefixLen]) {
				counted++
			}
			prefixLen++
		}
		eligibleWorking := 0
		for _, e := range working {
			if eligible(e) {
				eligibleWorking++
			}
		}

		// Front collapse: keys at or before the prefix follow it in ascending order.
		var collapsed []string
		for _, k := range keys {
			if k <= prefix {
				collapsed = append(collapsed, winners[k])
			}
		}
		if len(collapsed) > 0 {
			if !assert.Equal(t, collapsed, out[prefixLen:prefixLen+len(collapsed)], "run %d: front collapse", run) {
				return
			}
		}

		// Locked placement: with a complete prefix and nothing collapsed
		// below it, every reachable eligible lock sits at its requested slot.
		if counted < prefix || (len(keys) > 0 && keys[0] < prefix) {
			continue
		}
		slots := make(map[string]int, len(out))
		slot := 0
		for _, id := range out {
			if eligible(byID[id]) {
				slots[id] = slot
				slot++
			}
		}
		for _, k := range keys {
			id := winners[k]
			if k >= eligibleWorking || !eligible(byID[id]) {
				continue
			}
			if !assert.Equal(t, k, slots[id], "run %d: %s not at load index %d in %v", run, id, k, out) {
				return
			}
		}
	}
}
