// Package bootstrap connects the runtime dependencies shared by the server and seed commands.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"socialnet/internal/cache"
	"socialnet/internal/config"
	"socialnet/internal/database"
	"socialnet/internal/middleware"
	"socialnet/internal/observability"
	"socialnet/internal/repository"

	"github.com/redis/go-redis/v9"
)

const mongoConnectTimeout = 15 * time.Second

// Options control runtime initialization behavior.
type Options struct {
	// SkipRedis leaves the Redis client nil, e.g. for one-shot commands.
	SkipRedis bool
}

// InitRuntime opens the store selected by DB_DRIVER and, unless skipped, Redis.
// The Redis client is nil when Redis is unreachable.
func InitRuntime(cfg *config.Config, opts Options) (*repository.Store, *redis.Client, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	if opts.SkipRedis {
		return store, nil, nil
	}

	cache.InitRedis(cfg.RedisURL)
	return store, cache.GetClient(), nil
}

// OpenStore connects to the configured backend and prepares its schema or indexes.
func OpenStore(cfg *config.Config) (*repository.Store, error) {
	if cfg.DBDriver == config.DriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
		defer cancel()

		client, db, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("mongo connection failed: %w", err)
		}
		return repository.NewMongoStore(client, db), nil
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	return repository.NewGormStore(db), nil
}

// InitTracing installs the tracer provider described by cfg.
func InitTracing(cfg *config.Config, serviceName string) (func(context.Context) error, error) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	if cfg.TracingEnabled {
		middleware.Logger.Info("tracing enabled", "exporter", cfg.TracingExporter)
	}
	return shutdown, nil
}
