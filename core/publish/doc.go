// Package publish applies reconciled load orders to shared state.
//
// Publisher.Apply is the single effect of a reconciliation cycle: it replaces
// the visible order of a profile and then hands the result to every
// configured Sink. Applying an order equal to the current one does nothing,
// so repeated cycles never cause churn.
//
// Sinks render the order in the game's plugins.txt format. StorageSink
// uploads it to object storage where launchers and sync tools pick it up.
package publish
