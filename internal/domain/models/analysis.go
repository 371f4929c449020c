package models

import "time"

// LiquidityProfile describes the position against the latest market state.
type LiquidityProfile struct {
	AsOf                 time.Time `json:"as_of"`
	Price                float64   `json:"price"`
	Volatility           float64   `json:"volatility"`
	AnnualizedVolatility float64   `json:"annualized_volatility"`
	ADV                  float64   `json:"adv"`
	DollarADV            float64   `json:"dollar_adv"`
	PositionValue        float64   `json:"position_value"`
	PositionToADV        float64   `json:"position_to_adv"`
	EstimatedDays        float64   `json:"estimated_days"`
}

// RiskSummary is the tail view of a Monte Carlo shortfall sample.
type RiskSummary struct {
	Confidence        float64      `json:"confidence"`
	Distribution      Distribution `json:"distribution"`
	ValueAtRisk       float64      `json:"value_at_risk"`
	ExpectedShortfall float64      `json:"expected_shortfall"`
	ParametricVaR     float64      `json:"parametric_var"`
}

// Analysis bundles everything one dashboard run produces for a ticker.
type Analysis struct {
	ID          string             `json:"id"`
	Ticker      string             `json:"ticker"`
	Records     int                `json:"records"`
	Profile     LiquidityProfile   `json:"profile"`
	Liquidation Liquidation        `json:"liquidation"`
	Status      LiquidationStatus  `json:"status"`
	TotalCost   float64            `json:"total_cost"`
	MonteCarlo  *MonteCarloResult  `json:"monte_carlo,omitempty"`
	Risk        *RiskSummary       `json:"risk,omitempty"`
	Sensitivity []SensitivityPoint `json:"sensitivity"`
}
