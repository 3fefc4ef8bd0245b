// Package reconcile merges an automatically computed plugin load order with a
// set of user-assigned absolute positions ("locked indices").
//
// The merge is a pure function: it never touches shared state, never fails and
// always returns a permutation of the identifiers it was given. Requests that
// cannot be honoured degrade gracefully instead of producing an error:
//
//   - Requests at or before the fixed prefix collapse to the slot right after it.
//   - Requests beyond the reachable range are appended at the end.
//   - Two identifiers asking for the same index: one wins, the other is appended.
//
// # Load index numbering
//
// Only eligible entries advance the load index: an entry is eligible when it is
// enabled and not of the excluded file-extension class (light plugins, ".esl",
// by default). Disabled and excluded entries keep their relative position but
// are never used as anchors for a locked entry.
//
// # Fixed prefix
//
// The first FixedPrefix eligible entries are pinned by an external rule
// (engine-mandated native plugins). FixedPrefixCount derives that number from a
// game's native list.
//
// # Usage
//
//	order := []reconcile.Entry{
//	    {ID: "Skyrim.esm", Enabled: true, Rank: 0},
//	    {ID: "SkyUI.esp", Enabled: true, Rank: 1},
//	    {ID: "Alternate Start.esp", Enabled: true, Rank: 2},
//	}
//	locks := reconcile.LockMap{"Alternate Start.esp": 1}
//	final := reconcile.Reconcile(order, locks, 1)
//	// [Skyrim.esm Alternate Start.esp SkyUI.esp]
//
//	plan := reconcile.Diff(previous, final)
package reconcile
