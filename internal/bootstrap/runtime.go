// Package bootstrap wires the runtime pieces the commands share: store
// connection and migration, Redis, tracing, and the feature-flag manager.
package bootstrap

import (
	"context"
	"fmt"

	"satellite/internal/cache"
	"satellite/internal/config"
	"satellite/internal/database"
	"satellite/internal/featureflags"
	"satellite/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Runtime holds the initialized shared dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	Flags *featureflags.Manager

	shutdownTracing func(context.Context) error
}

// InitRuntime connects to the store and Redis, runs migrations, and starts
// tracing. Redis being unreachable is not fatal; the cache layer degrades
// to a no-op.
func InitRuntime(cfg *config.Config) (*Runtime, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("store connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("store migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:  "satellite",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.SamplerRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	return &Runtime{
		DB:              db,
		Redis:           cache.GetClient(),
		Flags:           featureflags.NewManager(cfg.FeatureFlags),
		shutdownTracing: shutdown,
	}, nil
}

// Shutdown flushes tracing and closes Redis.
func (r *Runtime) Shutdown(ctx context.Context) {
	if r.shutdownTracing != nil {
		if err := r.shutdownTracing(ctx); err != nil {
			observability.GlobalLogger.WarnContext(ctx, "tracing shutdown failed",
				"error", err.Error())
		}
	}
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
}
