// Package state is the observable source of per-profile load order data.
//
// It stores the automatically computed (unlocked) order and the list of
// native plugins for each profile. Writers replace values wholesale; readers
// always get copies. Order subscribers are called synchronously, on the
// writer's goroutine, after each SetOrder.
package state
