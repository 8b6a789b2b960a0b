package app

import (
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/unishowcase/server/internal/module/badge"
	"github.com/unishowcase/server/internal/module/collaboration"
	"github.com/unishowcase/server/internal/module/project"
	"github.com/unishowcase/server/internal/shared/config"
	"github.com/unishowcase/server/internal/shared/events"
	"github.com/unishowcase/server/internal/shared/logger"
	"github.com/unishowcase/server/internal/shared/metrics"
	"github.com/unishowcase/server/internal/shared/middleware"
	"github.com/unishowcase/server/internal/shared/ratelimit"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       goredis.UniversalClient
	RateLimiter ratelimit.Limiter
	Logger      *logger.Logger
	ZapLogger   *zap.Logger
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics
	EventBus    *events.Bus
	Tokens      middleware.TokenValidator

	// Event handlers
	BadgeEvents events.Handler

	// HTTP Handlers
	ProjectHandler       *project.Handler
	BadgeHandler         *badge.Handler
	CollaborationHandler *collaboration.Handler
}
