package reconcile

// Entry is a single item of the automatically computed load order.
type Entry struct {
	// ID is the plugin identifier, usually its file name. Case is preserved.
	ID string `json:"id" yaml:"id"`

	// Enabled marks entries that take part in load index numbering.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Rank is the position assigned by the automatic sorter. Ranks may have
	// gaps and need not start at zero.
	Rank int `json:"rank" yaml:"rank"`
}

// LockMap maps a plugin identifier to its requested absolute load index.
// Identifiers that are not listed are unlocked.
type LockMap map[string]int

// Clone returns an independent copy of the map.
func (m LockMap) Clone() LockMap {
	out := make(LockMap, len(m))
	for id, idx := range m {
		out[id] = idx
	}
	return out
}

// Options tunes a reconciliation run.
type Options struct {
	// FixedPrefix is the number of eligible entries pinned at the front.
	FixedPrefix int

	// ExcludedExtension is the file-extension class that never advances the
	// load index. Matching is case-insensitive. Empty disables the exclusion.
	ExcludedExtension string
}

// Move describes an entry whose position changed between two orders.
type Move struct {
	ID   string `json:"id"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// Plan summarizes the difference between a published order and a new one.
type Plan struct {
	// Moves lists entries present in both orders at different positions.
	Moves []Move `json:"moves"`

	// Added lists entries only present in the new order.
	Added []string `json:"added"`

	// Removed lists entries only present in the previous order.
	Removed []string `json:"removed"`
}

// IsEmpty reports whether applying the new order would change nothing.
func (p Plan) IsEmpty() bool {
	return len(p.Moves) == 0 && len(p.Added) == 0 && len(p.Removed) == 0
}
