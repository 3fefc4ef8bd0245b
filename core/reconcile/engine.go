package reconcile

import (
	"sort"
	"strings"
)

// DefaultExcludedExtension is the light plugin class, which shares a single
// load index slot and therefore never counts toward numbering.
const DefaultExcludedExtension = ".esl"

// lockRequest is a locked identifier together with its requested index.
type lockRequest struct {
	index int
	id    string
}

// Reconcile merges the unlocked order with the lock map using the default
// excluded extension. See ReconcileWithOptions.
func Reconcile(order []Entry, locks LockMap, fixedPrefix int) []string {
	return ReconcileWithOptions(order, locks, Options{
		FixedPrefix:       fixedPrefix,
		ExcludedExtension: DefaultExcludedExtension,
	})
}

// ReconcileWithOptions returns the final load order.
//
// Unlocked entries keep their relative rank order. Each locked entry is placed
// right after the eligible entry that makes its load index equal to the
// requested one. The result is always a permutation of the identifiers in
// order; lock entries for identifiers missing from order are ignored.
func ReconcileWithOptions(order []Entry, locks LockMap, opts Options) []string {
	sorted := sortByRank(order)

	if len(locks) == 0 {
		ids := make([]string, len(sorted))
		for i, e := range sorted {
			ids[i] = e.ID
		}
		return ids
	}

	present := make(map[string]Entry, len(sorted))
	working := make([]Entry, 0, len(sorted))
	for _, e := range sorted {
		present[e.ID] = e
		if _, locked := locks[e.ID]; !locked {
			working = append(working, e)
		}
	}

	pending, displaced := invert(locks, present)
	keys := make([]int, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	eligible := func(e Entry) bool {
		return e.Enabled && !hasExtension(e.ID, opts.ExcludedExtension)
	}

	result := make([]string, 0, len(sorted))

	// Fixed prefix stays untouched.
	pos := 0
	for counted := 0; counted < opts.FixedPrefix && pos < len(working); pos++ {
		if eligible(working[pos]) {
			counted++
		}
		result = append(result, working[pos].ID)
	}

	// Requests at or before the cursor cannot be honoured; they collapse to
	// the front in ascending key order. Only eligible placements take a load
	// index.
	cursor := opts.FixedPrefix
	next := 0
	for next < len(keys) && keys[next] <= cursor {
		placed := pending[keys[next]]
		result = append(result, placed.ID)
		next++
		if eligible(placed) {
			cursor++
		}
	}

	for ; pos < len(working); pos++ {
		e := working[pos]
		result = append(result, e.ID)
		if !eligible(e) {
			continue
		}
		cursor++
		for next < len(keys) && keys[next] == cursor {
			placed := pending[keys[next]]
			result = append(result, placed.ID)
			next++
			if eligible(placed) {
				cursor++
			}
		}
	}

	// Out of reach.
	for ; next < len(keys); next++ {
		result = append(result, pending[keys[next]].ID)
	}
	for _, req := range displaced {
		result = append(result, req.id)
	}

	return result
}

// invert builds the index -> entry mapping. Identifiers are visited in
// ascending order and the last one visited for an index wins; the others are
// returned as displaced, ordered by requested index then identifier.
func invert(locks LockMap, present map[string]Entry) (map[int]Entry, []lockRequest) {
	ids := make([]string, 0, len(locks))
	for id := range locks {
		if _, ok := present[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	pending := make(map[int]Entry, len(ids))
	var displaced []lockRequest
	for _, id := range ids {
		idx := locks[id]
		if prev, taken := pending[idx]; taken {
			displaced = append(displaced, lockRequest{index: idx, id: prev.ID})
		}
		pending[idx] = present[id]
	}

	sort.Slice(displaced, func(i, j int) bool {
		if displaced[i].index != displaced[j].index {
			return displaced[i].index < displaced[j].index
		}
		return displaced[i].id < displaced[j].id
	})

	return pending, displaced
}

// sortByRank returns a copy of order sorted ascending by rank, stable on ties.
func sortByRank(order []Entry) []Entry {
	sorted := make([]Entry, len(order))
	copy(sorted, order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted
}

func hasExtension(id, ext string) bool {
	if ext == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(id), strings.ToLower(ext))
}
