package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"cutconnect/internal/core/config"
	"cutconnect/internal/core/server"
	mdw "cutconnect/internal/transport/http/middleware"
)

// NewAPIEngine builds the public engine: shared middleware, root modules
// (/, /test, /health, /metrics) and API modules under /api.
func NewAPIEngine(l *zap.Logger, cfg *config.Config, reg *Registry) *gin.Engine {
	r := server.NewRouter(l, cfg.CORS)

	h := cfg.App.HTTP
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(h.RateLimitRPS), h.RateLimitBurst),
		mdw.ConcurrencyLimit(h.MaxConcurrency),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(time.Duration(h.RequestTimeoutSec)*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	reg.MountRoot(r)
	reg.MountAPI(r.Group("/api"))
	return r
}
