// Package postgres provides PostgreSQL database connection and management
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pantryhq/pantry/internal/infrastructure/config"
	gormModels "github.com/pantryhq/pantry/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection owns the pooled PostgreSQL connection
type Connection struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	logger *zap.Logger
}

// Connect opens the database and configures the pool from cfg
func Connect(cfg *config.Config, log *zap.Logger) (*Connection, error) {
	gormLogger := logger.New(&gormLogWriter{logger: log.Named("gorm")}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormModels.LogLevel(cfg.Database.LogLevel),
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)

	return &Connection{db: db, sqlDB: sqlDB, logger: log}, nil
}

// DB returns the GORM handle
func (c *Connection) DB() *gorm.DB {
	return c.db
}

// SQL returns the underlying pool
func (c *Connection) SQL() *sql.DB {
	return c.sqlDB
}

// HealthCheck pings the primary
func (c *Connection) HealthCheck(ctx context.Context) error {
	if err := c.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the pool
func (c *Connection) Close() error {
	if err := c.sqlDB.Close(); err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		return err
	}
	return nil
}

type gormLogWriter struct {
	logger *zap.Logger
}

func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}
