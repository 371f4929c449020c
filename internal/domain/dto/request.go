package dto

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted in request bodies.
const DateLayout = "2006-01-02"

// WindowRequest selects the stored history of one ticker. Empty bounds are open.
type WindowRequest struct {
	Ticker string `json:"ticker" binding:"required" example:"AAPL"`
	Start  string `json:"start,omitempty" example:"2024-01-02"`
	End    string `json:"end,omitempty" example:"2024-12-31"`
}

// Bounds parses Start and End. Nil means unbounded.
func (w WindowRequest) Bounds() (start, end *time.Time, err error) {
	if start, err = parseDate("start", w.Start); err != nil {
		return nil, nil, err
	}
	if end, err = parseDate("end", w.End); err != nil {
		return nil, nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("end %s is before start %s", w.End, w.Start)
	}
	return start, end, nil
}

// StressRequest scales volatility and ADV before a run. Omitted means 1.
type StressRequest struct {
	VolatilityMultiplier *float64 `json:"volatility_multiplier,omitempty" binding:"omitempty,gte=0" example:"1.5"`
	ADVMultiplier        *float64 `json:"adv_multiplier,omitempty" binding:"omitempty,gte=0" example:"0.5"`
}

// AnalysisRequest is the body of POST /api/v1/analysis.
type AnalysisRequest struct {
	WindowRequest
	StressRequest
	TotalShares       float64  `json:"total_shares" binding:"required,gt=0" example:"500000"`
	ParticipationRate float64  `json:"participation_rate,omitempty" binding:"omitempty,gt=0,lte=1" example:"0.1"`
	ImpactK           *float64 `json:"impact_k,omitempty" binding:"omitempty,gte=0" example:"1"`
	Simulations       int      `json:"simulations,omitempty" binding:"omitempty,gte=1" example:"1000"`
	Seed              *uint64  `json:"seed,omitempty" example:"42"`
	Drift             float64  `json:"drift,omitempty" example:"0"`
	Confidence        float64  `json:"confidence,omitempty" binding:"omitempty,gt=0,lt=1" example:"0.95"`
	SkipMonteCarlo    bool     `json:"skip_monte_carlo,omitempty"`
	IncludeShortfall  bool     `json:"include_shortfall,omitempty"`
}

// ScheduleRequest is the body of POST /api/v1/schedule/optimal. Without a
// ticker, volatility is required and no Monte Carlo pricing is done.
type ScheduleRequest struct {
	Ticker           string   `json:"ticker,omitempty" example:"AAPL"`
	TotalShares      float64  `json:"total_shares" binding:"required,gt=0" example:"100000"`
	Days             int      `json:"days,omitempty" binding:"omitempty,gte=1,lte=5000" example:"10"`
	Volatility       *float64 `json:"volatility,omitempty" binding:"omitempty,gte=0" example:"0.02"`
	Eta              *float64 `json:"eta,omitempty" binding:"omitempty,gt=0" example:"0.01"`
	RiskAversion     *float64 `json:"risk_aversion,omitempty" binding:"omitempty,gte=0" example:"0.000001"`
	Simulations      int      `json:"simulations,omitempty" binding:"omitempty,gte=1" example:"1000"`
	Seed             *uint64  `json:"seed,omitempty" example:"42"`
	Confidence       float64  `json:"confidence,omitempty" binding:"omitempty,gt=0,lt=1" example:"0.95"`
	IncludeShortfall bool     `json:"include_shortfall,omitempty"`
}

// SensitivityRequest is the body of POST /api/v1/sensitivity. Empty rates
// sweep the configured range.
type SensitivityRequest struct {
	WindowRequest
	StressRequest
	TotalShares float64   `json:"total_shares" binding:"required,gt=0" example:"500000"`
	Rates       []float64 `json:"rates,omitempty" binding:"omitempty,dive,gt=0,lte=1"`
	ImpactK     *float64  `json:"impact_k,omitempty" binding:"omitempty,gte=0" example:"1"`
}

// MonteCarloRequest is the body of POST /api/v1/montecarlo. Shares holds
// the quantity sold on each day of the schedule.
type MonteCarloRequest struct {
	ArrivalPrice     float64   `json:"arrival_price" binding:"required,gt=0" example:"100"`
	Drift            float64   `json:"drift,omitempty" example:"0"`
	Volatility       float64   `json:"volatility" binding:"gte=0" example:"0.02"`
	Shares           []float64 `json:"shares" binding:"required,min=1,max=5000,dive,gte=0"`
	Simulations      int       `json:"simulations,omitempty" binding:"omitempty,gte=1" example:"1000"`
	Seed             *uint64   `json:"seed,omitempty" example:"42"`
	Confidence       float64   `json:"confidence,omitempty" binding:"omitempty,gt=0,lt=1" example:"0.95"`
	IncludeShortfall bool      `json:"include_shortfall,omitempty"`
}

func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD: %w", field, s, err)
	}
	return &t, nil
}
