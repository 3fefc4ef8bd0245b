// Package loadorder keeps published load orders in line with user locks.
//
// Every profile has its own change gate. Replacing the automatic order runs a
// reconcile cycle synchronously; lock edits are debounced and republish once
// the quiet window has passed. A cycle reads the order, the native plugins
// and the locks fresh, reconciles them and publishes the result back into the
// state store, whose own change notification is then suppressed by the gate.
//
// # Routes
//
//	GET    /loadorder/games
//	POST   /loadorder/preview
//	GET    /loadorder/:profile
//	PUT    /loadorder/:profile/order
//	PUT    /loadorder/:profile/natives
//	POST   /loadorder/:profile/reconcile
//	GET    /loadorder/:profile/locks
//	GET    /loadorder/:profile/locks/:identifier
//	PUT    /loadorder/:profile/locks/:identifier
//	DELETE /loadorder/:profile/locks/:identifier
package loadorder
