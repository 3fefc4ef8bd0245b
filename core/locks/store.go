package locks

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"loadorder-manager/core/database"
	"loadorder-manager/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists locks across sessions.
type Store interface {
	// Load returns every lock of the profile.
	Load(ctx context.Context, profile string) (reconcile.LockMap, error)
	// Save creates or replaces the lock of a single identifier.
	Save(ctx context.Context, profile, identifier string, index int) error
	// Delete removes the lock of a single identifier. Missing rows are not an error.
	Delete(ctx context.Context, profile, identifier string) error
}

// Lock is a persisted locked index.
type Lock struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Profile     string `gorm:"column:profile;size:64;not null;uniqueIndex:idx_plugin_locks_profile_identifier"`
	Identifier  string `gorm:"column:identifier;size:255;not null;uniqueIndex:idx_plugin_locks_profile_identifier"`
	LockedIndex int    `gorm:"column:locked_index;not null"`
}

// TableName overrides the table name.
func (Lock) TableName() string {
	return "plugin_locks"
}

// GormStore is a Store backed by a GORM connection.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store on top of an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Prepare creates or migrates the plugin_locks table.
func (s *GormStore) Prepare(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Lock{}); err != nil {
		return fmt.Errorf("failed to migrate plugin_locks: %w", err)
	}
	return nil
}

// CheckSchema returns the columns the Lock model expects but the table lacks.
func (s *GormStore) CheckSchema() ([]string, error) {
	columns, err := database.GetTableColumns(s.db, Lock{}.TableName())
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		existing[col.Field] = struct{}{}
	}

	var missing []string
	t := reflect.TypeOf(Lock{})
	for i := 0; i < t.NumField(); i++ {
		name := columnName(t.Field(i).Tag.Get("gorm"))
		if name == "" {
			continue
		}
		if _, ok := existing[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// Load returns every lock of the profile.
func (s *GormStore) Load(ctx context.Context, profile string) (reconcile.LockMap, error) {
	var rows []Lock
	if err := s.db.WithContext(ctx).Where("profile = ?", profile).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load locks: %w", err)
	}

	out := make(reconcile.LockMap, len(rows))
	for _, row := range rows {
		out[row.Identifier] = row.LockedIndex
	}
	return out, nil
}

// Save upserts the lock of a single identifier.
func (s *GormStore) Save(ctx context.Context, profile, identifier string, index int) error {
	row := Lock{Profile: profile, Identifier: identifier, LockedIndex: index}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}, {Name: "identifier"}},
		DoUpdates: clause.AssignmentColumns([]string{"locked_index"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save lock: %w", err)
	}
	return nil
}

// Delete removes the lock of a single identifier.
func (s *GormStore) Delete(ctx context.Context, profile, identifier string) error {
	err := s.db.WithContext(ctx).
		Where("profile = ? AND identifier = ?", profile, identifier).
		Delete(&Lock{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete lock: %w", err)
	}
	return nil
}

// columnName extracts the column name from a gorm struct tag.
func columnName(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}
