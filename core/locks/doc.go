// Package locks holds the user-assigned locked load indices, scoped per profile.
//
// The Registry is the single mutation path for locks. It validates requests,
// keeps an in-memory copy per profile and notifies listeners after every
// change so the reconciliation gate can schedule a debounced run.
//
// # Persistence
//
// Locks survive restarts through a Store. GormStore keeps them in the
// plugin_locks table of the configured database (MySQL or SQLite). A profile is
// hydrated from the store on first use; concurrent first reads share a single
// load.
//
// # Usage
//
//	store := locks.NewGormStore(db)
//	_ = store.Prepare(ctx)
//	reg := locks.NewRegistry(store, logger)
//
//	_ = reg.Set(ctx, "skyrimse", "Alternate Start.esp", 5)
//	idx, ok := reg.LockedIndexOf("skyrimse", "Alternate Start.esp")
package locks
