package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unishowcase/server/internal/module/auth"
	"github.com/unishowcase/server/internal/module/badge"
	"github.com/unishowcase/server/internal/module/collaboration"
	"github.com/unishowcase/server/internal/module/project"
	"github.com/unishowcase/server/internal/module/user"
	"github.com/unishowcase/server/internal/shared/cache"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/database"
	"github.com/unishowcase/server/internal/shared/events"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/ratelimit"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideRateLimiter,
	ProvideLogger,
	ProvideZapLogger,
	ProvideRegistry,
	ProvideMetrics,
	ProvideEventBus,
	wire.Bind(new(events.Publisher), new(*events.Bus)),
)

// ProvideDatabase creates a database connection and applies the schema
// when auto migration is enabled.
func ProvideDatabase(cfg *config.Config, zapLog *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database, zapLog)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := database.Close(db); err != nil {
			zapLog.Warn("Database close failed", zap.Error(err))
		}
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			cleanup()
			return nil, nil, err
		}
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client.
// Returns nil when Redis is not configured or unreachable.
func ProvideRedisClient(cfg *config.Config, zapLog *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		zapLog.Warn("Redis connection failed, continuing without rate limiting", zap.Error(err))
		return nil, func() {}
	}
	return client, func() {
		if err := cache.Close(client); err != nil {
			zapLog.Warn("Redis close failed", zap.Error(err))
		}
	}
}

// ProvideRateLimiter creates the Redis-backed limiter behind a circuit breaker.
// Returns nil when limiting is disabled or Redis is unavailable.
func ProvideRateLimiter(cfg *config.Config, redis goredis.UniversalClient, zapLog *zap.Logger) ratelimit.Limiter {
	if !cfg.RateLimit.Enabled || redis == nil {
		return nil
	}
	return ratelimit.WithBreaker(
		ratelimit.NewRedisLimiter(redis),
		ratelimit.BreakerConfig{
			Failures: cfg.RateLimit.BreakerFailures,
			Timeout:  cfg.RateLimit.BreakerTimeout,
		},
		zapLog,
	)
}

// ProvideLogger creates a logger instance.
func ProvideLogger(cfg *config.Config) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
}

// ProvideZapLogger creates a zap logger instance.
func ProvideZapLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return zapLog, func() { _ = zapLog.Sync() }, nil
}

// ProvideRegistry creates the Prometheus registry served on the metrics path.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates a metrics instance.
// Returns nil when metrics are disabled.
func ProvideMetrics(cfg *config.Config, reg *prometheus.Registry) *metrics.Metrics {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New(cfg.Metrics.Namespace, reg)
}

// ProvideEventBus creates the in-process event bus.
func ProvideEventBus(zapLog *zap.Logger) *events.Bus {
	return events.NewBus(zapLog)
}

// ===== Auth Providers =====

// AuthSet provides bearer token validation.
var AuthSet = wire.NewSet(
	ProvideJWTManager,
	wire.Bind(new(middleware.TokenValidator), new(*auth.JWTManager)),
)

// ProvideJWTManager creates the JWT manager from auth configuration.
func ProvideJWTManager(cfg *config.Config) *auth.JWTManager {
	return auth.NewJWTManager(auth.JWTConfigFromAuth(&cfg.Auth))
}

// ===== Module Providers =====

// UserSet provides user dependencies.
var UserSet = wire.NewSet(
	user.NewRepository,
	wire.Bind(new(collaboration.UserStore), new(user.Repository)),
)

// BadgeSet provides badge dependencies.
var BadgeSet = wire.NewSet(
	badge.NewRepository,
	badge.NewFacts,
	badge.NewService,
	badge.NewHandler,
	badge.NewEventHandler,
	wire.Bind(new(project.BadgeTrigger), new(*badge.Service)),
)

// ProjectSet provides project dependencies.
var ProjectSet = wire.NewSet(
	project.NewRepository,
	project.NewService,
	project.NewHandler,
	wire.Bind(new(collaboration.ProjectStore), new(project.Repository)),
)

// CollaborationSet provides collaboration dependencies.
var CollaborationSet = wire.NewSet(
	collaboration.NewRepository,
	collaboration.NewService,
	collaboration.NewHandler,
)

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	AuthSet,
	UserSet,
	BadgeSet,
	ProjectSet,
	CollaborationSet,
)
