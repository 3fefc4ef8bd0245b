package models

import "loadorder-manager/core/reconcile"

// EntryView is one entry of a published order together with its lock.
type EntryView struct {
	ID          string `json:"id"`
	Enabled     bool   `json:"enabled"`
	Position    int    `json:"position"`
	LockedIndex *int   `json:"locked_index,omitempty"`
}

// OrderResponse is the current state of a profile.
type OrderResponse struct {
	Profile string            `json:"profile"`
	Entries []EntryView       `json:"entries"`
	Locks   reconcile.LockMap `json:"locks"`
	Natives []string          `json:"natives"`
}

// SetOrderRequest replaces the automatically computed order of a profile.
type SetOrderRequest struct {
	Entries []reconcile.Entry `json:"entries"`
}

// SetNativesRequest replaces the native plugin list of a profile.
type SetNativesRequest struct {
	Natives []string `json:"natives"`
}

// LockRequest sets the locked index of an identifier.
type LockRequest struct {
	Index *int `json:"index"`
}

// LockResponse describes the lock of a single identifier.
type LockResponse struct {
	Identifier string `json:"identifier"`
	Index      int    `json:"index"`
}

// PreviewRequest is a pure reconciliation input. When FixedPrefix is omitted
// it is derived from Natives, or from the configured game when Natives is
// omitted too.
type PreviewRequest struct {
	Order       []reconcile.Entry `json:"order" yaml:"order"`
	Locks       reconcile.LockMap `json:"locks" yaml:"locks"`
	FixedPrefix *int              `json:"fixed_prefix,omitempty" yaml:"fixed_prefix,omitempty"`
	Natives     []string          `json:"natives,omitempty" yaml:"natives,omitempty"`
}

// PreviewResponse is the final order of a preview.
type PreviewResponse struct {
	Order       []string `json:"order"`
	FixedPrefix int      `json:"fixed_prefix"`
}

// ReconcileResponse reports a forced reconciliation cycle.
type ReconcileResponse struct {
	Profile string         `json:"profile"`
	Plan    reconcile.Plan `json:"plan"`
	Order   []string       `json:"order"`
}
