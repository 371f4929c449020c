package main

//
//  @title           liqrisk API
//  @version         1.0
//  @description     Liquidation execution-cost engine: market impact, participation-constrained schedules, Almgren-Chriss trajectories and Monte Carlo shortfall.
//  @termsOfService  https://github.com/guttosm/liqrisk
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/liqrisk
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        liquidity
//  @tag.description Liquidation cost analysis, optimal scheduling and Monte Carlo pricing
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/guttosm/liqrisk/config"
	_ "github.com/guttosm/liqrisk/docs" // swagger docs
	"github.com/guttosm/liqrisk/internal/app"
	"github.com/guttosm/liqrisk/internal/engine"
	"github.com/guttosm/liqrisk/internal/ingestion"
	"github.com/guttosm/liqrisk/internal/logger"
	"github.com/guttosm/liqrisk/internal/marketdata"
	"github.com/guttosm/liqrisk/internal/report"
	"github.com/guttosm/liqrisk/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string, writeTimeout time.Duration) *http.Server {
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Monte Carlo runs may use the whole request timeout; leave room to write.
		WriteTimeout: writeTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// simulateOptions drives the offline single-ticker run.
type simulateOptions struct {
	File              string
	Out               string
	TotalShares       float64
	ParticipationRate float64
	Simulations       int
	Seed              uint64
}

// runSimulate loads one CSV export, liquidates the position against its
// latest history, prices the schedule with Monte Carlo and writes the
// schedule CSV to opts.Out (skipped when empty).
func runSimulate(ctx context.Context, cfg config.EngineConfig, opts simulateOptions) error {
	log := logger.For("simulate")

	bars, err := ingestion.ParseBarsFile(ctx, opts.File)
	if err != nil {
		return err
	}
	records, err := marketdata.Prepare(bars, cfg.ADVWindow, cfg.VolWindow)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.File, err)
	}

	rate := opts.ParticipationRate
	if rate == 0 {
		rate = cfg.ParticipationRate
	}
	profile, err := engine.Profile(records, opts.TotalShares, rate)
	if err != nil {
		return err
	}
	liq, err := engine.Liquidate(records, opts.TotalShares, rate, cfg.ImpactK)
	if err != nil {
		return err
	}

	ev := log.Info().
		Str("file", opts.File).
		Int("records", len(records)).
		Float64("price", profile.Price).
		Float64("adv", profile.ADV).
		Float64("annualized_volatility", profile.AnnualizedVolatility).
		Str("status", string(liq.Status())).
		Int("days", liq.Schedule.Horizon()).
		Float64("remaining_shares", liq.RemainingShares).
		Float64("total_cost", liq.Schedule.TotalCost())

	if len(liq.Schedule) > 0 && opts.Simulations > 0 {
		mc := engine.MonteCarlo{Simulations: opts.Simulations, Seed: opts.Seed, Workers: cfg.Workers}
		res, err := mc.LiquidationCost(ctx, profile.Price, 0, profile.Volatility, liq.Schedule.Shares())
		if err != nil {
			return err
		}
		dist := engine.Summarize(res.Shortfall)
		v, err := engine.ValueAtRisk(res.Shortfall, cfg.Confidence)
		if err != nil {
			return err
		}
		es, err := engine.ExpectedShortfall(res.Shortfall, cfg.Confidence)
		if err != nil {
			return err
		}
		ev = ev.Int("simulations", res.Simulations).
			Float64("shortfall_mean", dist.Mean).
			Float64("shortfall_p95", dist.P95).
			Float64("value_at_risk", v).
			Float64("expected_shortfall", es)
	}
	ev.Msg("simulation done")

	if opts.Out == "" {
		return nil
	}
	if err := report.WriteScheduleFile(opts.Out, liq.Schedule); err != nil {
		return err
	}
	log.Info().Str("out", opts.Out).Int("rows", len(liq.Schedule)).Msg("schedule written")
	return nil
}

// runIngest loads <TICKER>_raw.csv files from dir into Postgres.
func runIngest(ctx context.Context, repo storage.BarsRepository, dir string, tickers []string, parallel int, force bool) error {
	rep, err := ingestion.ProcessDirectory(ctx, dir, tickers, repo, parallel, force)
	if err != nil {
		return err
	}
	failed := rep.Failed()
	for _, o := range failed {
		logger.L().Warn().Str("ticker", o.Ticker).Str("file", o.File).Err(o.Err).Msg("ticker not ingested")
	}
	logger.L().Info().Int("loaded", rep.Loaded()).Int("failed", len(failed)).Msg("ingestion summary")
	if len(failed) > 0 && rep.Loaded() == 0 {
		return fmt.Errorf("no ticker ingested (%d failed)", len(failed))
	}
	return nil
}

// main is the entry point of the liqrisk application.
//
// Modes (selected via --mode flag):
//   - ingest:   Loads <TICKER>_raw.csv files from --dir into Postgres.
//   - api:      Starts the REST API.
//   - simulate: Offline run over one CSV (--file), writing the schedule to --out.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	mode := flag.String("mode", "ingest", "Mode: ingest, api or simulate")
	dir := flag.String("dir", "./data/raw", "Directory with <TICKER>_raw.csv files")
	tickers := flag.String("tickers", strings.Join(cfg.Tickers, ","), "Comma-separated tickers to ingest")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto)")
	force := flag.Bool("force", false, "Reload tickers even if already ingested (deletes existing bars)")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	file := flag.String("file", "", "CSV export for simulate mode")
	out := flag.String("out", "schedule.csv", "Schedule CSV output for simulate mode (empty to skip)")
	shares := flag.Float64("shares", 500000, "Position size for simulate mode")
	rate := flag.Float64("rate", 0, "Participation rate for simulate mode (0=config default)")
	sims := flag.Int("sims", cfg.Engine.Simulations, "Monte Carlo paths for simulate mode (0 to skip)")
	seed := flag.Uint64("seed", cfg.Engine.Seed, "Monte Carlo seed for simulate mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")

		db, err := app.InitPostgres(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		list := ingestion.NormalizeTickers(strings.Split(*tickers, ","))
		if err := runIngest(ctx, storage.NewBarsRepository(db), *dir, list, *parallel, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port, cfg.Server.RequestTimeout)
		gracefulShutdown(ctx, server, cleanup)

	case "simulate":
		if *file == "" {
			logger.L().Fatal().Msg("--file is required in simulate mode")
		}
		opts := simulateOptions{
			File:              *file,
			Out:               *out,
			TotalShares:       *shares,
			ParticipationRate: *rate,
			Simulations:       *sims,
			Seed:              *seed,
		}
		if err := runSimulate(ctx, cfg.Engine, opts); err != nil {
			logger.L().Fatal().Err(err).Msg("simulation failed")
		}

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
