// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server connection or a local SQLite
// file, depending on the configured driver. The load order service uses it to
// persist locked indices; it runs without a database when Connect fails.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table for both dialects, which lets
// stores verify that a table created by an older release still matches the
// model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Running without persistence", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "plugin_locks")
package database
