// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"gorm.io/gorm"

	app "github.com/pantryhq/pantry/internal/application/kitchen"
	"github.com/pantryhq/pantry/internal/domain/shared"
	"github.com/pantryhq/pantry/internal/infrastructure/config"
	"github.com/pantryhq/pantry/internal/infrastructure/http/apiserver"
	"github.com/pantryhq/pantry/internal/infrastructure/http/handlers"
	"github.com/pantryhq/pantry/internal/infrastructure/http/middleware"
	"github.com/pantryhq/pantry/internal/infrastructure/monitoring"
	gormRepo "github.com/pantryhq/pantry/internal/infrastructure/persistence/gorm"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/memory"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/migrations"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/postgres"
	redisStore "github.com/pantryhq/pantry/internal/infrastructure/persistence/redis"
	"github.com/pantryhq/pantry/internal/infrastructure/persistence/sqlite"
	"github.com/pantryhq/pantry/internal/infrastructure/security"
	"github.com/pantryhq/pantry/internal/ports/inbound"
	"github.com/pantryhq/pantry/internal/ports/outbound"
	"github.com/pantryhq/pantry/pkg/healthcheck"
	"github.com/pantryhq/pantry/pkg/logger"
)

// ConfigFileEnv names the environment variable holding an explicit config
// file path
const ConfigFileEnv = "PANTRY_CONFIG_FILE"

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	EventModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load(os.Getenv(ConfigFileEnv))
	},
)

// LoggerModule provides logging and routes fx's own events through zap
var LoggerModule = fx.Options(
	fx.Provide(
		func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		},
	),
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		l := &fxevent.ZapLogger{Logger: log.Named("fx")}
		l.UseLogLevel(zap.DebugLevel)
		return l
	}),
)

// Database bundles the GORM handle with its pool
type Database struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// DatabaseModule provides the database selected by database.driver
var DatabaseModule = fx.Provide(
	NewDatabase,
	func(db *Database) *gorm.DB { return db.Gorm },
)

// NewDatabase opens SQLite or PostgreSQL. PostgreSQL schemas come from the
// versioned migrations; SQLite is auto-migrated from the models.
func NewDatabase(cfg *config.Config, log *zap.Logger) (*Database, error) {
	switch cfg.Database.Driver {
	case "postgres":
		conn, err := postgres.Connect(cfg, log)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := runMigrations(conn.SQL(), cfg.Database.Database, log); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return &Database{Gorm: conn.DB(), SQL: conn.SQL()}, nil

	default:
		db, err := sqlite.SetupDatabase(cfg.Database.Path, gormRepo.LogLevel(cfg.Database.LogLevel))
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		log.Info("Connected to SQLite database", zap.String("path", cfg.Database.Path))
		return &Database{Gorm: db, SQL: sqlDB}, nil
	}
}

func runMigrations(db *sql.DB, name string, log *zap.Logger) error {
	m, err := migrations.New(db, name, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// CacheModule provides the optional Redis client and the owner locker
// built on it
var CacheModule = fx.Provide(
	NewRedisClient,
	NewUserLocker,
)

// NewRedisClient connects to Redis when enabled. A nil client means the
// service runs single-instance.
func NewRedisClient(cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, error) {
	if !cfg.Redis.Enabled {
		log.Info("Redis disabled, using in-process owner locks")
		return nil, nil
	}
	return redisStore.NewClient(&cfg.Redis, log)
}

// NewUserLocker picks the distributed locker when Redis is available
func NewUserLocker(cfg *config.Config, client goredis.UniversalClient, log *zap.Logger) outbound.UserLocker {
	if client == nil {
		return memory.NewUserLocker()
	}
	return redisStore.NewUserLocker(client, cfg.Redis.KeyPrefix, cfg.Kitchen.LockTTL, cfg.Kitchen.LockRetry, log)
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewItemRepository,
	gormRepo.NewRecipeRepository,
	gormRepo.NewPlanRepository,
	gormRepo.NewShoppingListRepository,
	gormRepo.NewMustBuyRepository,
	gormRepo.NewTransactor,
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	monitoring.NewRegistry,
	monitoring.NewMetricsCollector,
	NewKitchenService,
)

// ServiceParams are the inputs of the kitchen service
type ServiceParams struct {
	fx.In

	Config     *config.Config
	Logger     *zap.Logger
	Items      outbound.ItemRepository
	Recipes    outbound.RecipeRepository
	Plans      outbound.PlanRepository
	Lists      outbound.ShoppingListRepository
	MustBuy    outbound.MustBuyRepository
	Transactor outbound.Transactor
	Locker     outbound.UserLocker
	Events     shared.EventDispatcher
	Metrics    *monitoring.MetricsCollector
}

// NewKitchenService wires the kitchen use cases
func NewKitchenService(p ServiceParams) inbound.KitchenService {
	return app.NewService(app.Dependencies{
		Items:      p.Items,
		Recipes:    p.Recipes,
		Plans:      p.Plans,
		Lists:      p.Lists,
		MustBuy:    p.MustBuy,
		Transactor: p.Transactor,
		Locker:     p.Locker,
		Events:     p.Events,
		Metrics:    p.Metrics,
	}, app.Config{
		PageSize:     p.Config.Kitchen.PageSize,
		UpcomingDays: p.Config.Kitchen.UpcomingDays,
		SearchLimit:  p.Config.Kitchen.SearchLimit,
		LockWait:     p.Config.Kitchen.LockWait,
	}, p.Logger)
}

// HTTPModule provides the HTTP server and its collaborators
var HTTPModule = fx.Provide(
	security.NewValidator,
	security.NewTokenVerifier,
	handlers.NewKitchenHandlers,
	NewRateLimiter,
	NewHealthCheck,
	NewServer,
)

// NewRateLimiter returns nil when rate limiting is disabled
func NewRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimit)
}

// NewHealthCheck registers the database and, when present, Redis checks
func NewHealthCheck(cfg *config.Config, db *Database, client goredis.UniversalClient, log *zap.Logger) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log.Named("health"))
	hc.Register("database", healthcheck.NewDatabaseChecker(db.SQL))
	if client != nil {
		hc.Register("redis", healthcheck.NewRedisChecker(client))
	}
	return hc
}

// NewServer builds the API server
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	kitchen *handlers.KitchenHandlers,
	verifier *security.TokenVerifier,
	limiter *middleware.RateLimiter,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *apiserver.Server {
	return apiserver.NewServer(apiserver.Params{
		Config:   cfg,
		Logger:   log,
		Kitchen:  kitchen,
		Verifier: verifier,
		Limiter:  limiter,
		Metrics:  metrics,
		Health:   health,
	})
}

// EventModule provides event handling
var EventModule = fx.Options(
	fx.Provide(
		fx.Annotate(
			NewEventDispatcher,
			fx.As(new(shared.EventDispatcher)),
		),
	),
	fx.Invoke(RegisterEventHandlers),
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks starts and stops the server and background workers
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *Database,
	client goredis.UniversalClient,
	limiter *middleware.RateLimiter,
	metrics *monitoring.MetricsCollector,
	server *apiserver.Server,
) {
	stop := make(chan struct{})
	watchCtx, cancelWatch := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting pantry service",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database", cfg.Database.Driver),
			)

			if limiter != nil {
				go limiter.Run(stop)
			}
			go metrics.WatchDB(watchCtx, db.SQL, 15*time.Second)

			return server.Start()
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down pantry service")

			if err := server.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}
			close(stop)
			cancelWatch()

			if client != nil {
				if err := client.Close(); err != nil {
					log.Error("Failed to close Redis client", zap.Error(err))
				}
			}
			if err := db.SQL.Close(); err != nil {
				log.Error("Failed to close database connection", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
