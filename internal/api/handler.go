package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/liqrisk/internal/domain/dto"
	"github.com/guttosm/liqrisk/internal/middleware"
	"github.com/guttosm/liqrisk/internal/service"
)

// Handler exposes the liquidity service over HTTP.
//
// Responsibilities:
//   - Bind and validate JSON request bodies
//   - Translate request DTOs into service parameters
//   - Translate service results into response DTOs
//
// Service errors are attached with c.Error and rendered by
// middleware.ErrorHandler, which maps them to status codes.
type Handler struct {
	svc service.LiquidityService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.LiquidityService) *Handler {
	return &Handler{svc: svc}
}

// ListTickers godoc
// @Summary      List tickers
// @Description  Returns the tickers with ingested daily bars
// @Tags         liquidity
// @Produce      json
// @Success      200  {object}  dto.TickersResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/tickers [get]
func (h *Handler) ListTickers(c *gin.Context) {
	tickers, err := h.svc.Tickers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if tickers == nil {
		tickers = []string{}
	}
	c.JSON(http.StatusOK, dto.TickersResponse{Tickers: tickers})
}

// Analyze godoc
// @Summary      Run a liquidity analysis
// @Description  Profiles the ticker, liquidates the position under a participation cap, prices the schedule with Monte Carlo and sweeps the participation rate
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalysisRequest   true  "Analysis parameters"
// @Success      200      {object}  dto.AnalysisResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse     "Not Found"
// @Failure      422      {object}  dto.ErrorResponse     "Insufficient data"
// @Failure      500      {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/analysis [post]
func (h *Handler) Analyze(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	w, ok := window(c, req.WindowRequest)
	if !ok {
		return
	}

	analysis, err := h.svc.Analyze(c.Request.Context(), service.AnalysisParams{
		Window:            w,
		Stress:            stress(req.StressRequest),
		TotalShares:       req.TotalShares,
		ParticipationRate: req.ParticipationRate,
		ImpactK:           req.ImpactK,
		Simulations:       req.Simulations,
		Seed:              req.Seed,
		Drift:             req.Drift,
		Confidence:        req.Confidence,
		SkipMonteCarlo:    req.SkipMonteCarlo,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalysisResponse(analysis, req.IncludeShortfall))
}

// OptimalSchedule godoc
// @Summary      Almgren-Chriss optimal schedule
// @Description  Builds the risk-averse liquidation trajectory; with a ticker it is dated on the trading calendar and priced with Monte Carlo
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ScheduleRequest   true  "Schedule parameters"
// @Success      200      {object}  dto.ScheduleResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse     "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse     "Not Found"
// @Failure      500      {object}  dto.ErrorResponse     "Internal Error"
// @Router       /api/v1/schedule/optimal [post]
func (h *Handler) OptimalSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	res, err := h.svc.OptimalSchedule(c.Request.Context(), service.ScheduleParams{
		Ticker:       req.Ticker,
		TotalShares:  req.TotalShares,
		Days:         req.Days,
		Volatility:   req.Volatility,
		Eta:          req.Eta,
		RiskAversion: req.RiskAversion,
		Simulations:  req.Simulations,
		Seed:         req.Seed,
		Confidence:   req.Confidence,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewScheduleResponse(res.Trajectory, res.MonteCarlo, res.Risk, req.IncludeShortfall))
}

// Sensitivity godoc
// @Summary      Participation-rate sweep
// @Description  Liquidates the position once per participation rate and reports cost and duration
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SensitivityRequest   true  "Sweep parameters"
// @Success      200      {object}  dto.SensitivityResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse        "Not Found"
// @Failure      422      {object}  dto.ErrorResponse        "Insufficient data"
// @Failure      500      {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/sensitivity [post]
func (h *Handler) Sensitivity(c *gin.Context) {
	var req dto.SensitivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	w, ok := window(c, req.WindowRequest)
	if !ok {
		return
	}

	points, err := h.svc.Sensitivity(c.Request.Context(), service.SensitivityParams{
		Window:      w,
		Stress:      stress(req.StressRequest),
		TotalShares: req.TotalShares,
		Rates:       req.Rates,
		ImpactK:     req.ImpactK,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SensitivityResponse{Ticker: w.Ticker, Points: points})
}

// MonteCarlo godoc
// @Summary      Price an explicit schedule
// @Description  Simulates GBM price paths and returns the implementation shortfall distribution of the given daily sales
// @Tags         liquidity
// @Accept       json
// @Produce      json
// @Param        request  body      dto.MonteCarloRequest   true  "Simulation parameters"
// @Success      200      {object}  dto.MonteCarloResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse       "Bad Request"
// @Failure      504      {object}  dto.ErrorResponse       "Timeout"
// @Failure      500      {object}  dto.ErrorResponse       "Internal Error"
// @Router       /api/v1/montecarlo [post]
func (h *Handler) MonteCarlo(c *gin.Context) {
	var req dto.MonteCarloRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	report, err := h.svc.MonteCarlo(c.Request.Context(), service.MonteCarloParams{
		ArrivalPrice: req.ArrivalPrice,
		Drift:        req.Drift,
		Volatility:   req.Volatility,
		Shares:       req.Shares,
		Simulations:  req.Simulations,
		Seed:         req.Seed,
		Confidence:   req.Confidence,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMonteCarloResponse(report.Result, report.Risk, req.IncludeShortfall))
}

func window(c *gin.Context, req dto.WindowRequest) (service.Window, bool) {
	start, end, err := req.Bounds()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date range", err)
		return service.Window{}, false
	}
	return service.Window{Ticker: req.Ticker, Start: start, End: end}, true
}

func stress(req dto.StressRequest) service.Stress {
	return service.Stress{Volatility: req.VolatilityMultiplier, ADV: req.ADVMultiplier}
}
