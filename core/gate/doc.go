// Package gate decides when a reconciliation cycle runs.
//
// A Gate receives two independent change streams:
//
//   - OrderChanged: the automatic load order was replaced. The cycle runs
//     immediately on the caller's goroutine.
//   - LocksChanged: a locked index was edited. The cycle runs once after a
//     quiet window (2s by default) without further lock edits. Callers never
//     block; each call re-arms the timer.
//
// A reentrancy guard drops any trigger that arrives while a cycle is in
// flight. Publishing a new order notifies order subscribers synchronously,
// which would otherwise re-enter the gate from inside its own cycle. Dropped
// triggers are not queued or retried.
//
// Cycles always read their inputs fresh; the gate carries no data.
package gate
