package cmd

import (
	"context"
	"fmt"

	"loadorder-manager/core/database"
	"loadorder-manager/core/locks"

	"go.uber.org/zap"
)

// openLockStore connects to the database and migrates the lock table when
// columns are missing.
func openLockStore(ctx context.Context, cfg database.Config, logg *zap.Logger) (*locks.GormStore, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	store := locks.NewGormStore(db)
	missing, err := store.CheckSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect lock table: %w", err)
	}
	if len(missing) > 0 {
		logg.Info("Migrating lock table", zap.Strings("missing_columns", missing))
		if err := store.Prepare(ctx); err != nil {
			return nil, err
		}
	}
	return store, nil
}
