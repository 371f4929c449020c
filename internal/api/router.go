package api

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/config"
	"github.com/guttosm/liqrisk/internal/middleware"
	"github.com/guttosm/liqrisk/internal/observability"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter creates a Gin engine with routes configured.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, Timeout).
//   - Mounts Prometheus metrics (/metrics) when metrics is non-nil.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Health and readiness endpoints are registered by app.InitializeApp.
func NewRouter(handler *Handler, cfg config.Config, metrics *observability.Metrics) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(metrics),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	// ─── Metrics & Swagger ────────────────────────
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/tickers", handler.ListTickers)
		v1.POST("/analysis", handler.Analyze)
		v1.POST("/schedule/optimal", handler.OptimalSchedule)
		v1.POST("/sensitivity", handler.Sensitivity)
		v1.POST("/montecarlo", handler.MonteCarlo)
	}

	return router
}
