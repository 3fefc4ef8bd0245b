package reconcile

import (
	"sort"
	"strings"
)

// FixedPrefixCount returns how many entries of order are native to the game
// and not of the excluded extension class. Native names are matched
// case-insensitively, the way the game engine resolves plugin file names.
func FixedPrefixCount(order []Entry, natives []string, excludedExt string) int {
	if len(natives) == 0 {
		return 0
	}

	nativeSet := make(map[string]struct{}, len(natives))
	for _, n := range natives {
		nativeSet[strings.ToLower(n)] = struct{}{}
	}

	count := 0
	for _, e := range order {
		if _, ok := nativeSet[strings.ToLower(e.ID)]; !ok {
			continue
		}
		if hasExtension(e.ID, excludedExt) {
			continue
		}
		count++
	}
	return count
}

// Diff compares the previously published order with a new one.
func Diff(previous, next []string) Plan {
	plan := Plan{
		Moves:   []Move{},
		Added:   []string{},
		Removed: []string{},
	}

	prevPos := make(map[string]int, len(previous))
	for i, id := range previous {
		prevPos[id] = i
	}

	nextSet := make(map[string]struct{}, len(next))
	for i, id := range next {
		nextSet[id] = struct{}{}
		from, ok := prevPos[id]
		if !ok {
			plan.Added = append(plan.Added, id)
			continue
		}
		if from != i {
			plan.Moves = append(plan.Moves, Move{ID: id, From: from, To: i})
		}
	}

	for _, id := range previous {
		if _, ok := nextSet[id]; !ok {
			plan.Removed = append(plan.Removed, id)
		}
	}
	sort.Strings(plan.Removed)

	return plan
}

// Entries rebuilds an unlocked order from a final order: ranks become
// positions and enabled flags are carried over from template. Identifiers
// unknown to template are enabled.
func Entries(final []string, template []Entry) []Entry {
	enabled := make(map[string]bool, len(template))
	for _, e := range template {
		enabled[e.ID] = e.Enabled
	}

	out := make([]Entry, len(final))
	for i, id := range final {
		en, ok := enabled[id]
		if !ok {
			en = true
		}
		out[i] = Entry{ID: id, Enabled: en, Rank: i}
	}
	return out
}
