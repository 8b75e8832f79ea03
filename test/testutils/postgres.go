//go:build integration

package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase provides a migrated PostgreSQL container with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	GormDB    *gorm.DB
	PgxPool   *pgxpool.Pool
	DSN       string
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "postgres:15-alpine",
		Database: "pantry_test",
		Username: "test_user",
		Password: "test_password",
		Port:     "5432",
	}
}

// SetupTestDatabase starts PostgreSQL, applies the embedded migrations and
// registers cleanup on t
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	cfg := DefaultDatabaseConfig()
	ctx := context.Background()

	dsnFor := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.Image,
			ExposedPorts: []string{cfg.Port + "/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       cfg.Database,
				"POSTGRES_USER":     cfg.Username,
				"POSTGRES_PASSWORD": cfg.Password,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
				wait.ForSQL(nat.Port(cfg.Port+"/tcp"), "pgx", dsnFor),
			),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start postgres container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port(cfg.Port))
	require.NoError(t, err)
	dsn := dsnFor(host, port)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.PingContext(ctx), "Failed to ping test database")

	migrator, err := migrations.New(db, cfg.Database, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, migrator.Up(), "Failed to run migrations")
	require.NoError(t, migrator.Close())

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create GORM connection")

	pgxConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "Failed to parse pgx config")
	pgxConfig.MaxConns = 5
	pgxPool, err := pgxpool.NewWithConfig(ctx, pgxConfig)
	require.NoError(t, err, "Failed to create pgx pool")

	td := &TestDatabase{
		Container: container,
		DB:        db,
		GormDB:    gormDB,
		PgxPool:   pgxPool,
		DSN:       dsn,
	}
	t.Cleanup(td.Cleanup)
	return td
}

// Cleanup closes connections and terminates the container
func (td *TestDatabase) Cleanup() {
	if td.PgxPool != nil {
		td.PgxPool.Close()
	}
	if sqlDB, err := td.GormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if td.DB != nil {
		_ = td.DB.Close()
	}
	if td.Container != nil {
		_ = td.Container.Terminate(context.Background())
	}
}
