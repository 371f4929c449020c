package models

// MonteCarloResult holds one implementation-shortfall value per simulated path.
//
// Shortfall[i] = sum_t shares_t * (ArrivalPrice - price_t,i): the amount by which
// selling along path i falls short of marking the whole position at the arrival
// price. Positive values are losses.
type MonteCarloResult struct {
	ArrivalPrice float64   `json:"arrival_price"`
	TotalShares  float64   `json:"total_shares"`
	Simulations  int       `json:"simulations"`
	Seed         uint64    `json:"seed"`
	Shortfall    []float64 `json:"shortfall"`
}

// ArrivalValue is the position marked at the arrival price.
func (r MonteCarloResult) ArrivalValue() float64 {
	return r.ArrivalPrice * r.TotalShares
}

// Proceeds returns the cash realised on path i.
func (r MonteCarloResult) Proceeds(i int) float64 {
	return r.ArrivalValue() - r.Shortfall[i]
}

// Distribution summarises a sample of simulated values.
type Distribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P05    float64 `json:"p05"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
}
