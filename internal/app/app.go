package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/unishowcase/server/cmd/server/docs" // swagger docs
	"github.com/unishowcase/server/internal/shared/cache"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/database"
	"github.com/unishowcase/server/internal/shared/middleware"
)

const readyTimeout = 2 * time.Second

// App represents the application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	app := NewWithDependencies(deps)
	app.cleanup = cleanup

	if deps.Redis == nil {
		deps.ZapLogger.Warn("Rate limiting disabled: Redis unavailable")
	}
	deps.ZapLogger.Info("Application initialized",
		zap.String("address", cfg.Server.Address),
		zap.Bool("metrics", deps.Metrics != nil),
		zap.Bool("rate_limit", deps.RateLimiter != nil),
	)

	return app, nil
}

// NewWithDependencies builds the application around already constructed dependencies.
func NewWithDependencies(deps *Dependencies) *App {
	app := &App{deps: deps, cleanup: func() {}}

	app.registerEventHandlers()
	app.router = app.setupRouter()
	app.registerRoutes()

	return app
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config

	// Set Gin mode based on environment
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Apply global middleware
	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.deps.Logger, "/health", "/ready", cfg.Metrics.Path))
	r.Use(middleware.CORS(cfg.Server.CORSOrigins))
	r.Use(middleware.Metrics(a.deps.Metrics))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", a.ready)

	if a.deps.Metrics != nil && a.deps.Registry != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(a.deps.Registry, promhttp.HandlerOpts{})))
	}

	// Swagger documentation endpoint
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	return r
}

// ready reports whether the database and Redis answer.
// Redis is optional, so its absence never fails readiness.
func (a *App) ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"database": "ok", "redis": "disabled"}

	if a.deps.DB == nil {
		status = http.StatusServiceUnavailable
		checks["database"] = "unavailable"
	} else if err := database.Ping(ctx, a.deps.DB); err != nil {
		status = http.StatusServiceUnavailable
		checks["database"] = err.Error()
	}

	if a.deps.Redis != nil {
		checks["redis"] = "ok"
		if err := cache.Ping(ctx, a.deps.Redis); err != nil {
			checks["redis"] = err.Error()
		}
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	c.JSON(status, gin.H{"status": state, "checks": checks})
}

// registerEventHandlers subscribes module handlers to the event bus.
func (a *App) registerEventHandlers() {
	if a.deps.EventBus == nil || a.deps.BadgeEvents == nil {
		return
	}
	a.deps.EventBus.Register(a.deps.BadgeEvents)
}

// registerRoutes registers all API routes.
func (a *App) registerRoutes() {
	cfg := a.deps.Config

	// API v1 group
	v1 := a.router.Group("/api/v1")

	// Public routes, identity attached when a valid token is present
	publicRouter := v1.Group("")
	publicRouter.Use(middleware.OptionalAuth(a.deps.Tokens))

	// Protected routes (requires auth)
	protectedRouter := v1.Group("")
	protectedRouter.Use(middleware.RequireAuth(a.deps.Tokens))

	collaborateLimit := middleware.RateLimit(a.deps.RateLimiter, middleware.RateLimitConfig{
		Scope:  "collaborate",
		Limit:  cfg.RateLimit.CollaborateLimit,
		Window: cfg.RateLimit.CollaborateWindow,
	}, a.deps.Logger)
	badgeCheckLimit := middleware.RateLimit(a.deps.RateLimiter, middleware.RateLimitConfig{
		Scope:  "badge-check",
		Limit:  cfg.RateLimit.BadgeCheckLimit,
		Window: cfg.RateLimit.BadgeCheckWindow,
	}, a.deps.Logger)

	// Register public module routes
	a.deps.ProjectHandler.RegisterRoutes(publicRouter)
	a.deps.BadgeHandler.RegisterRoutes(publicRouter)

	// Register protected module routes
	a.deps.ProjectHandler.RegisterProtectedRoutes(protectedRouter)
	a.deps.BadgeHandler.RegisterProtectedRoutes(protectedRouter, badgeCheckLimit)
	a.deps.CollaborationHandler.RegisterRoutes(protectedRouter, collaborateLimit)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases the Redis client, the database pool and flushes the logger.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
