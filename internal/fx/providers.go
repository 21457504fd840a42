package fx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/sp3dr4/xlu/config"
	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/infrastructure/cache"
	memoryRepo "github.com/sp3dr4/xlu/internal/infrastructure/memory"
	"github.com/sp3dr4/xlu/internal/infrastructure/migrations"
	postgresRepo "github.com/sp3dr4/xlu/internal/infrastructure/postgres"
	redisRepo "github.com/sp3dr4/xlu/internal/infrastructure/redis"
	sqliteRepo "github.com/sp3dr4/xlu/internal/infrastructure/sqlite"
	"github.com/sp3dr4/xlu/internal/pkg/logging"
	"github.com/sp3dr4/xlu/internal/pkg/metrics"
)

const connectRetryDelay = 500 * time.Millisecond

// ProvideLogger creates the application logger and installs it as the slog default
func ProvideLogger(cfg *config.Config) *slog.Logger {
	logger := logging.NewLogger(os.Stdout, cfg.Logging.Level)
	slog.SetDefault(logger)
	return logger
}

// ProvideStore creates the backing short link store selected by configuration
func ProvideStore(cfg *config.Config, logger *slog.Logger) (domain.ShortLinkStore, error) {
	ctx := context.Background()

	switch cfg.Database.Type {
	case "memory":
		logger.Info("Using in-memory short link store", "links", len(cfg.Links))
		store, err := memoryRepo.NewShortLinkRepository(cfg.Links, metricsShortCode(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("invalid configured links: %w", err)
		}
		return store, nil

	case "sqlite":
		dbURL := cfg.GetDatabaseURL()
		logger.Info("Using SQLite short link store", "path", dbURL)

		if err := os.MkdirAll(filepath.Dir(dbURL), 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}

		db, err := connectWithRetry(ctx, cfg, logger, migrations.DriverSQLite, dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
		}

		if err := migrations.Up(db.DB, migrations.DriverSQLite, filepath.Join(cfg.Database.MigrationsDir, "sqlite")); err != nil {
			_ = db.Close()
			return nil, err
		}

		return sqliteRepo.NewShortLinkRepository(db), nil

	case "postgres":
		logger.Info("Using PostgreSQL short link store")

		db, err := connectWithRetry(ctx, cfg, logger, migrations.DriverPostgres, cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}

		if err := migrations.Up(db.DB, migrations.DriverPostgres, filepath.Join(cfg.Database.MigrationsDir, "postgres")); err != nil {
			_ = db.Close()
			return nil, err
		}

		return postgresRepo.NewShortLinkRepository(db), nil

	case "redis":
		logger.Info("Using Redis short link store", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)

		client, err := ProvideRedisClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}

		return redisRepo.NewShortLinkRepository(client, cfg.Redis.Key, logger), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
}

// metricsShortCode returns the short code shadowed by a single-segment
// metrics path, if any
func metricsShortCode(cfg *config.Config) []string {
	if !cfg.Metrics.Enabled {
		return nil
	}
	segment := strings.Trim(cfg.Metrics.Path, "/")
	if segment == "" || strings.Contains(segment, "/") {
		return nil
	}
	return []string{segment}
}

// ProvideRedisClient creates a redis client and waits until it answers a ping
func ProvideRedisClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	err := retry.Do(
		func() error { return client.Ping(ctx).Err() },
		retryOptions(ctx, cfg, logger)...,
	)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// ProvideRepository wraps the store in the read-through cache unless caching
// is disabled
func ProvideRepository(cfg *config.Config, logger *slog.Logger, store domain.ShortLinkStore) (domain.ShortLinkRepository, error) {
	if !cfg.Cache.Enabled {
		logger.Info("Short link cache disabled")
		repo, err := cache.NewPassThroughRepository(store)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := cache.NewCachedShortLinkRepository(logger, store)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// ProvideMetricsRegistry creates the Prometheus registry, or a no-op one when
// metrics are disabled
func ProvideMetricsRegistry(cfg *config.Config) (metrics.Registry, error) {
	if !cfg.Metrics.Enabled {
		return metrics.NewNoOpRegistry(), nil
	}
	return metrics.NewPrometheusRegistry(cfg.Metrics)
}

func connectWithRetry(ctx context.Context, cfg *config.Config, logger *slog.Logger, driverName, dsn string) (*sqlx.DB, error) {
	var db *sqlx.DB
	err := retry.Do(
		func() error {
			var err error
			db, err = sqlx.ConnectContext(ctx, driverName, dsn)
			return err
		},
		retryOptions(ctx, cfg, logger)...,
	)
	return db, err
}

func retryOptions(ctx context.Context, cfg *config.Config, logger *slog.Logger) []retry.Option {
	attempts := cfg.Database.ConnectAttempts
	if attempts == 0 {
		attempts = 1
	}

	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(connectRetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Connection attempt failed", "attempt", n+1, "error", err)
		}),
	}
}

// StoreParams holds the parameters needed for store lifecycle management
type StoreParams struct {
	fx.In

	Store  domain.ShortLinkStore
	Logger *slog.Logger
}

// RegisterStoreHooks closes the backing store when the application stops
func RegisterStoreHooks(lc fx.Lifecycle, params StoreParams) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := params.Store.Close(); err != nil {
				params.Logger.Error("Failed to close short link store", "error", err)
				return err
			}
			params.Logger.Info("Short link store closed successfully")
			return nil
		},
	})
}
