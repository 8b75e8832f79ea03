// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"testing"

	"github.com/pantryhq/pantry/internal/infrastructure/persistence/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLite returns a migrated private in-memory database that is closed
// when the test ends
func SetupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := sqlite.SetupDatabase("", logger.Silent)
	require.NoError(t, err, "Failed to create sqlite database")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// TruncateAll empties every kitchen table
func TruncateAll(ctx context.Context, t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"must_buy_flags", "shopping_lists", "plans", "recipes", "items"} {
		require.NoError(t, db.WithContext(ctx).Exec("DELETE FROM "+table).Error)
	}
}
