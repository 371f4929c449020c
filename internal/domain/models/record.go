package models

import (
	"math"
	"time"
)

// DailyMarketRecord is the per-day input of the execution-cost engine.
//
// Fields:
//   - Close: closing price, must be > 0 when the day is traded.
//   - Volume: shares traded that day.
//   - ADV: rolling average daily volume. NaN while the rolling window is not populated.
//   - Volatility: rolling standard deviation of daily returns. NaN while undefined.
//   - SpreadProxy: (High - Low) / Close, used as a bid/ask spread estimate.
//
// Records are handed to the engine by value and never modified by it.
type DailyMarketRecord struct {
	Date        time.Time `json:"date"`
	Close       float64   `json:"close"`
	Volume      float64   `json:"volume"`
	ADV         float64   `json:"adv"`
	Volatility  float64   `json:"volatility"`
	SpreadProxy float64   `json:"spread_proxy"`
}

// HasADV reports whether the record carries a usable liquidity capacity.
func (r DailyMarketRecord) HasADV() bool {
	return !math.IsNaN(r.ADV) && !math.IsInf(r.ADV, 0) && r.ADV > 0
}

// Complete reports whether every rolling field is defined.
func (r DailyMarketRecord) Complete() bool {
	return !math.IsNaN(r.ADV) && !math.IsNaN(r.Volatility) && !math.IsNaN(r.SpreadProxy)
}
