package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/liqrisk/config"
	"github.com/guttosm/liqrisk/internal/domain/models"
	"github.com/guttosm/liqrisk/internal/engine"
	"github.com/guttosm/liqrisk/internal/logger"
	"github.com/guttosm/liqrisk/internal/marketdata"
	"github.com/guttosm/liqrisk/internal/observability"
	"github.com/guttosm/liqrisk/internal/storage"
)

// ErrTickerNotFound is returned when storage holds no bars for a ticker.
var ErrTickerNotFound = errors.New("ticker not found")

// LiquidityService runs the execution-cost engine against stored market data.
type LiquidityService interface {
	Analyze(ctx context.Context, p AnalysisParams) (*models.Analysis, error)
	OptimalSchedule(ctx context.Context, p ScheduleParams) (*ScheduleResult, error)
	Sensitivity(ctx context.Context, p SensitivityParams) ([]models.SensitivityPoint, error)
	MonteCarlo(ctx context.Context, p MonteCarloParams) (*MonteCarloReport, error)
	Tickers(ctx context.Context) ([]string, error)
}

// Window selects the stored history used for a run. Nil bounds are open.
type Window struct {
	Ticker string
	Start  *time.Time
	End    *time.Time
}

// Stress scales the prepared records. Nil multipliers mean 1.
type Stress struct {
	Volatility *float64
	ADV        *float64
}

// AnalysisParams drives the full dashboard run for one ticker.
// Zero or nil fields take the configured engine defaults.
type AnalysisParams struct {
	Window
	Stress
	TotalShares       float64
	ParticipationRate float64
	ImpactK           *float64
	Simulations       int
	Seed              *uint64
	Drift             float64
	Confidence        float64
	SkipMonteCarlo    bool
}

// ScheduleParams drives an Almgren–Chriss run. With a ticker, the latest
// record supplies volatility, arrival price and trading dates.
type ScheduleParams struct {
	Ticker       string
	TotalShares  float64
	Days         int
	Volatility   *float64
	Eta          *float64
	RiskAversion *float64
	Simulations  int
	Seed         *uint64
	Confidence   float64
}

// ScheduleResult is an optimal trajectory and, when priced, its cost distribution.
type ScheduleResult struct {
	Trajectory models.OptimalTrajectory
	MonteCarlo *models.MonteCarloResult
	Risk       *models.RiskSummary
}

// SensitivityParams drives a participation-rate sweep. Empty Rates use the
// configured range.
type SensitivityParams struct {
	Window
	Stress
	TotalShares float64
	Rates       []float64
	ImpactK     *float64
}

// MonteCarloParams values an explicit schedule without stored data.
type MonteCarloParams struct {
	ArrivalPrice float64
	Drift        float64
	Volatility   float64
	Shares       []float64
	Simulations  int
	Seed         *uint64
	Confidence   float64
}

// MonteCarloReport is a shortfall sample and its tail summary.
type MonteCarloReport struct {
	Result models.MonteCarloResult
	Risk   models.RiskSummary
}

type liquidityService struct {
	repo     storage.BarsRepository
	cfg      config.EngineConfig
	metrics  *observability.Metrics
	calendar marketdata.Calendar
}

// NewLiquidityService wires the service. metrics may be nil.
func NewLiquidityService(repo storage.BarsRepository, cfg config.EngineConfig, metrics *observability.Metrics, calendar marketdata.Calendar) LiquidityService {
	return &liquidityService{repo: repo, cfg: cfg, metrics: metrics, calendar: calendar}
}

func (s *liquidityService) Tickers(ctx context.Context) ([]string, error) {
	return s.repo.ListTickers()
}

// Analyze loads and prepares the ticker's history, applies stress, sizes the
// position, runs the participation-constrained liquidation, prices it with
// Monte Carlo and sweeps the participation rate.
//
// A liquidation that never trades is reported with status NO_PROGRESS and no
// Monte Carlo section; it is not an error.
func (s *liquidityService) Analyze(ctx context.Context, p AnalysisParams) (out *models.Analysis, err error) {
	defer s.observe("analysis", time.Now(), &err)
	log := logger.For("service")

	rate := orDefault(p.ParticipationRate, s.cfg.ParticipationRate)
	k := orDefaultPtr(p.ImpactK, s.cfg.ImpactK)

	records, err := s.records(p.Window, p.Stress)
	if err != nil {
		return nil, err
	}

	profile, err := engine.Profile(records, p.TotalShares, rate)
	if err != nil {
		return nil, err
	}

	liq, err := engine.Liquidate(records, p.TotalShares, rate, k)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLiquidation(string(liq.Status()))

	analysis := &models.Analysis{
		ID:          uuid.NewString(),
		Ticker:      normalizeTicker(p.Ticker),
		Records:     len(records),
		Profile:     profile,
		Liquidation: liq,
		Status:      liq.Status(),
		TotalCost:   liq.Schedule.TotalCost(),
	}

	if !p.SkipMonteCarlo && len(liq.Schedule) > 0 {
		report, err := s.simulate(ctx, MonteCarloParams{
			ArrivalPrice: profile.Price,
			Drift:        p.Drift,
			Volatility:   profile.Volatility,
			Shares:       liq.Schedule.Shares(),
			Simulations:  p.Simulations,
			Seed:         p.Seed,
			Confidence:   p.Confidence,
		})
		if err != nil {
			return nil, err
		}
		analysis.MonteCarlo = &report.Result
		analysis.Risk = &report.Risk
	}

	rates := engine.Linspace(s.cfg.SweepMin, s.cfg.SweepMax, s.cfg.SweepSteps)
	points, err := engine.Sweep(ctx, records, p.TotalShares, rates, k, s.cfg.Workers)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSweep(len(points))
	analysis.Sensitivity = points

	log.Info().Str("id", analysis.ID).Str("ticker", analysis.Ticker).Str("status", string(analysis.Status)).
		Int("days", liq.Schedule.Horizon()).Float64("total_cost", analysis.TotalCost).Msg("analysis done")
	return analysis, nil
}

// OptimalSchedule builds the Almgren–Chriss trajectory. Without a ticker the
// caller must supply the volatility and no pricing is done. With a ticker the
// trajectory is priced with Monte Carlo, using the configured path count when
// the request leaves it unset.
func (s *liquidityService) OptimalSchedule(ctx context.Context, p ScheduleParams) (out *ScheduleResult, err error) {
	defer s.observe("optimal_schedule", time.Now(), &err)

	days := p.Days
	if days == 0 {
		days = s.cfg.HorizonDays
	}
	if err := s.checkHorizon(days); err != nil {
		return nil, err
	}
	eta := orDefaultPtr(p.Eta, s.cfg.Eta)
	lambda := orDefaultPtr(p.RiskAversion, s.cfg.RiskAversion)

	var last *models.DailyMarketRecord
	if p.Ticker != "" {
		records, err := s.records(Window{Ticker: p.Ticker}, Stress{})
		if err != nil {
			return nil, err
		}
		last = &records[len(records)-1]
	}

	var vol float64
	switch {
	case p.Volatility != nil:
		vol = *p.Volatility
	case last != nil:
		vol = last.Volatility
	default:
		return nil, fmt.Errorf("%w: volatility is required without a ticker", engine.ErrInvalidInput)
	}

	traj, err := engine.OptimalSchedule(p.TotalShares, days, vol, eta, lambda)
	if err != nil {
		return nil, err
	}
	res := &ScheduleResult{Trajectory: traj}

	if last == nil {
		return res, nil
	}

	dates := s.calendar.NextTradingDays(last.Date, days)
	for i := range res.Trajectory.Steps {
		res.Trajectory.Steps[i].Date = dates[i]
	}

	report, err := s.simulate(ctx, MonteCarloParams{
		ArrivalPrice: last.Close,
		Volatility:   vol,
		Shares:       traj.Shares(),
		Simulations:  p.Simulations,
		Seed:         p.Seed,
		Confidence:   p.Confidence,
	})
	if err != nil {
		return nil, err
	}
	res.MonteCarlo = &report.Result
	res.Risk = &report.Risk
	return res, nil
}

func (s *liquidityService) Sensitivity(ctx context.Context, p SensitivityParams) (out []models.SensitivityPoint, err error) {
	defer s.observe("sensitivity", time.Now(), &err)

	records, err := s.records(p.Window, p.Stress)
	if err != nil {
		return nil, err
	}

	rates := p.Rates
	if len(rates) == 0 {
		rates = engine.Linspace(s.cfg.SweepMin, s.cfg.SweepMax, s.cfg.SweepSteps)
	}

	points, err := engine.Sweep(ctx, records, p.TotalShares, rates, orDefaultPtr(p.ImpactK, s.cfg.ImpactK), s.cfg.Workers)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSweep(len(points))
	return points, nil
}

func (s *liquidityService) MonteCarlo(ctx context.Context, p MonteCarloParams) (out *MonteCarloReport, err error) {
	defer s.observe("monte_carlo", time.Now(), &err)
	if err := s.checkHorizon(len(p.Shares)); err != nil {
		return nil, err
	}
	return s.simulate(ctx, p)
}

// checkHorizon rejects schedules longer than MaxHorizonDays. A zero cap
// disables the check.
func (s *liquidityService) checkHorizon(days int) error {
	if s.cfg.MaxHorizonDays > 0 && days > s.cfg.MaxHorizonDays {
		return fmt.Errorf("%w: horizon must be at most %d days, got %d", engine.ErrInvalidInput, s.cfg.MaxHorizonDays, days)
	}
	return nil
}

// simulate applies defaults and the simulation cap, runs the engine and
// summarises the shortfall tail.
func (s *liquidityService) simulate(ctx context.Context, p MonteCarloParams) (*MonteCarloReport, error) {
	sims := p.Simulations
	if sims == 0 {
		sims = s.cfg.Simulations
	}
	if sims < 0 || (s.cfg.MaxSimulations > 0 && sims > s.cfg.MaxSimulations) {
		return nil, fmt.Errorf("%w: simulations must be in [1, %d], got %d", engine.ErrInvalidInput, s.cfg.MaxSimulations, sims)
	}
	seed := s.cfg.Seed
	if p.Seed != nil {
		seed = *p.Seed
	}
	confidence := orDefault(p.Confidence, s.cfg.Confidence)

	mc := engine.MonteCarlo{Simulations: sims, Seed: seed, Workers: s.cfg.Workers}
	res, err := mc.LiquidationCost(ctx, p.ArrivalPrice, p.Drift, p.Volatility, p.Shares)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordPaths(sims)

	risk, err := summarize(res.Shortfall, confidence)
	if err != nil {
		return nil, err
	}
	return &MonteCarloReport{Result: res, Risk: risk}, nil
}

// records loads, prepares and stresses the stored history of w.Ticker.
func (s *liquidityService) records(w Window, st Stress) ([]models.DailyMarketRecord, error) {
	ticker := normalizeTicker(w.Ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker is required", engine.ErrInvalidInput)
	}

	bars, err := s.repo.GetBars(ticker, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("load bars for %s: %w", ticker, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	records, err := marketdata.Prepare(bars, s.cfg.ADVWindow, s.cfg.VolWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ticker, err)
	}

	return engine.ApplyStress(records, orDefaultPtr(st.Volatility, 1), orDefaultPtr(st.ADV, 1))
}

func (s *liquidityService) observe(operation string, start time.Time, errp *error) {
	status := observability.StatusOK
	if *errp != nil {
		status = observability.StatusError
	}
	now := time.Now()
	s.metrics.RecordRun(operation, status, now.Sub(start).Seconds(), now.Unix())
}

func summarize(shortfall []float64, confidence float64) (models.RiskSummary, error) {
	dist := engine.Summarize(shortfall)
	v, err := engine.ValueAtRisk(shortfall, confidence)
	if err != nil {
		return models.RiskSummary{}, err
	}
	es, err := engine.ExpectedShortfall(shortfall, confidence)
	if err != nil {
		return models.RiskSummary{}, err
	}
	return models.RiskSummary{
		Confidence:        confidence,
		Distribution:      dist,
		ValueAtRisk:       v,
		ExpectedShortfall: es,
		ParametricVaR:     engine.ParametricVaR(dist.Mean, dist.StdDev, confidence),
	}, nil
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultPtr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
