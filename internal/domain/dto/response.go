package dto

import (
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// TickersResponse lists the tickers with stored history.
type TickersResponse struct {
	Tickers []string `json:"tickers" example:"AAPL,MSFT"`
}

// RiskResponse summarises a shortfall distribution. Statistics that are
// undefined for the sample (e.g. the deviation of a single path) are null.
type RiskResponse struct {
	Confidence        float64  `json:"confidence" example:"0.95"`
	Count             int      `json:"count" example:"1000"`
	Mean              *float64 `json:"mean"`
	StdDev            *float64 `json:"std_dev"`
	Min               *float64 `json:"min"`
	Max               *float64 `json:"max"`
	P05               *float64 `json:"p05"`
	P50               *float64 `json:"p50"`
	P95               *float64 `json:"p95"`
	ValueAtRisk       *float64 `json:"value_at_risk"`
	ExpectedShortfall *float64 `json:"expected_shortfall"`
	ParametricVaR     *float64 `json:"parametric_var"`
}

// MonteCarloResponse is a priced schedule. Shortfall carries one value per
// path and is only present when requested.
type MonteCarloResponse struct {
	ArrivalPrice float64      `json:"arrival_price" example:"100"`
	TotalShares  float64      `json:"total_shares" example:"500000"`
	Simulations  int          `json:"simulations" example:"1000"`
	Seed         uint64       `json:"seed" example:"42"`
	Risk         RiskResponse `json:"risk"`
	Shortfall    []float64    `json:"shortfall,omitempty"`
}

// AnalysisResponse is the body returned by POST /api/v1/analysis.
type AnalysisResponse struct {
	ID              string                    `json:"id"`
	Ticker          string                    `json:"ticker" example:"AAPL"`
	Records         int                       `json:"records" example:"220"`
	Status          models.LiquidationStatus  `json:"status" example:"COMPLETE"`
	TotalShares     float64                   `json:"total_shares" example:"500000"`
	RemainingShares float64                   `json:"remaining_shares" example:"0"`
	TotalCost       float64                   `json:"total_cost" example:"12345.6"`
	Profile         models.LiquidityProfile   `json:"profile"`
	Schedule        models.Schedule           `json:"schedule"`
	MonteCarlo      *MonteCarloResponse       `json:"monte_carlo,omitempty"`
	Sensitivity     []models.SensitivityPoint `json:"sensitivity"`
}

// StepResponse is one day of an optimal trajectory. Date is set when the
// trajectory was anchored to a ticker's trading calendar.
type StepResponse struct {
	Day          int     `json:"day" example:"1"`
	Date         string  `json:"date,omitempty" example:"2025-01-02"`
	SharesTraded float64 `json:"shares_traded" example:"10000"`
	Holdings     float64 `json:"holdings" example:"90000"`
}

// ScheduleResponse is the body returned by POST /api/v1/schedule/optimal.
type ScheduleResponse struct {
	TotalShares float64             `json:"total_shares" example:"100000"`
	Days        int                 `json:"days" example:"10"`
	Kappa       float64             `json:"kappa" example:"0.05"`
	Steps       []StepResponse      `json:"steps"`
	MonteCarlo  *MonteCarloResponse `json:"monte_carlo,omitempty"`
}

// SensitivityResponse is the body returned by POST /api/v1/sensitivity.
type SensitivityResponse struct {
	Ticker string                    `json:"ticker" example:"AAPL"`
	Points []models.SensitivityPoint `json:"points"`
}

// NewRiskResponse converts a risk summary, nulling non-finite values.
func NewRiskResponse(r models.RiskSummary) RiskResponse {
	d := r.Distribution
	return RiskResponse{
		Confidence:        r.Confidence,
		Count:             d.Count,
		Mean:              finite(d.Mean),
		StdDev:            finite(d.StdDev),
		Min:               finite(d.Min),
		Max:               finite(d.Max),
		P05:               finite(d.P05),
		P50:               finite(d.P50),
		P95:               finite(d.P95),
		ValueAtRisk:       finite(r.ValueAtRisk),
		ExpectedShortfall: finite(r.ExpectedShortfall),
		ParametricVaR:     finite(r.ParametricVaR),
	}
}

// NewMonteCarloResponse converts an engine result and its risk summary.
func NewMonteCarloResponse(res models.MonteCarloResult, risk models.RiskSummary, includeShortfall bool) *MonteCarloResponse {
	out := &MonteCarloResponse{
		ArrivalPrice: res.ArrivalPrice,
		TotalShares:  res.TotalShares,
		Simulations:  res.Simulations,
		Seed:         res.Seed,
		Risk:         NewRiskResponse(risk),
	}
	if includeShortfall {
		out.Shortfall = res.Shortfall
	}
	return out
}

// NewAnalysisResponse converts a completed analysis.
func NewAnalysisResponse(a *models.Analysis, includeShortfall bool) AnalysisResponse {
	out := AnalysisResponse{
		ID:              a.ID,
		Ticker:          a.Ticker,
		Records:         a.Records,
		Status:          a.Status,
		TotalShares:     a.Liquidation.TotalShares,
		RemainingShares: a.Liquidation.RemainingShares,
		TotalCost:       a.TotalCost,
		Profile:         a.Profile,
		Schedule:        a.Liquidation.Schedule,
		Sensitivity:     a.Sensitivity,
	}
	if out.Schedule == nil {
		out.Schedule = models.Schedule{}
	}
	if a.MonteCarlo != nil && a.Risk != nil {
		out.MonteCarlo = NewMonteCarloResponse(*a.MonteCarlo, *a.Risk, includeShortfall)
	}
	return out
}

// NewScheduleResponse converts an optimal trajectory. mc and risk may be nil.
func NewScheduleResponse(t models.OptimalTrajectory, mc *models.MonteCarloResult, risk *models.RiskSummary, includeShortfall bool) ScheduleResponse {
	out := ScheduleResponse{
		TotalShares: t.TotalShares,
		Days:        t.Days,
		Kappa:       t.Kappa,
		Steps:       make([]StepResponse, len(t.Steps)),
	}
	for i, s := range t.Steps {
		out.Steps[i] = StepResponse{Day: s.Day, SharesTraded: s.SharesTraded, Holdings: s.Holdings}
		if !s.Date.IsZero() {
			out.Steps[i].Date = s.Date.Format(DateLayout)
		}
	}
	if mc != nil && risk != nil {
		out.MonteCarlo = NewMonteCarloResponse(*mc, *risk, includeShortfall)
	}
	return out
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
