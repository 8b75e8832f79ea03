// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	gormModels "github.com/pantryhq/pantry/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and migrates the SQLite database. An empty path
// opens a private in-memory database.
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dsn := dbPath
	if dsn == "" || dsn == ":memory:" {
		dsn = "file::memory:"
	} else {
		dsn = dsn + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite serialises writers; one connection also keeps an in-memory
	// database alive and shared for the life of the pool.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
