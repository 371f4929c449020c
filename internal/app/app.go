package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/config"
	"github.com/guttosm/liqrisk/internal/api"
	"github.com/guttosm/liqrisk/internal/marketdata"
	"github.com/guttosm/liqrisk/internal/observability"
	"github.com/guttosm/liqrisk/internal/service"
	"github.com/guttosm/liqrisk/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (BarsRepository).
//   - Creates the Prometheus registry and the liquidity service.
//   - Configures the Gin router with all API routes, /metrics and Swagger.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close the DB connection.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewBarsRepository(db)
	metrics := observability.NewMetrics("liqrisk")
	svc := service.NewLiquidityService(repo, cfg.Engine, metrics, marketdata.DefaultCalendar())

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg, metrics)

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
