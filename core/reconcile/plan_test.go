package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFixedPrefixCount tests native counting with case folding and excluded plugins.
func TestFixedPrefixCount(t *testing.T) {
	order := entries("Skyrim.esm", "update.esm", "ccfoo.esl", "mod.esp")
	natives := []string{"Skyrim.esm", "Update.esm", "ccFoo.esl", "Dawnguard.esm"}

	assert.Equal(t, 2, FixedPrefixCount(order, natives, DefaultExcludedExtension))
	assert.Equal(t, 3, FixedPrefixCount(order, natives, ""))
	assert.Equal(t, 0, FixedPrefixCount(order, nil, DefaultExcludedExtension))
}

// TestDiff tests that moves, additions and removals are reported.
func TestDiff(t *testing.T) {
	t.Run("Identical", func(t *testing.T) {
		plan := Diff([]string{"a", "b"}, []string{"a", "b"})
		assert.True(t, plan.IsEmpty())
	})

	t.Run("Changes", func(t *testing.T) {
		plan := Diff([]string{"a", "b", "c", "z"}, []string{"b", "a", "c", "n"})
		assert.False(t, plan.IsEmpty())
		assert.Equal(t, []Move{{ID: "b", From: 1, To: 0}, {ID: "a", From: 0, To: 1}}, plan.Moves)
		assert.Equal(t, []string{"n"}, plan.Added)
		assert.Equal(t, []string{"z"}, plan.Removed)
	})
}

// TestEntries tests that ranks follow positions and enabled flags are carried over.
func TestEntries(t *testing.T) {
	template := []Entry{
		{ID: "a", Enabled: false, Rank: 10},
		{ID: "b", Enabled: true, Rank: 3},
	}

	got := Entries([]string{"b", "a", "new"}, template)
	assert.Equal(t, []Entry{
		{ID: "b", Enabled: true, Rank: 0},
		{ID: "a", Enabled: false, Rank: 1},
		{ID: "new", Enabled: true, Rank: 2},
	}, got)
}
