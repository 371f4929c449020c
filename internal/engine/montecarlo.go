package engine

import (
	"context"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// LiquidationCost values an execution schedule against simulated GBM paths.
//
// Parameters:
//   - s0: arrival price, also day 0 of every path.
//   - mu, sigma: daily drift and volatility of the price process.
//   - shares: shares sold per day; the horizon is len(shares).
//
// Behavior:
//   - Day t (0-based) executes at path[t], so the first day trades at s0.
//   - Each path i yields Shortfall[i] = Σ shares_t · (s0 − price_t,i).
//   - Paths are independent and computed in parallel; path i uses the same
//     random stream as column i of PricePaths with the same seed.
//
// Returns ErrInsufficientData for an empty schedule and ErrInvalidInput for bad
// parameters or negative shares.
func (mc MonteCarlo) LiquidationCost(ctx context.Context, s0, mu, sigma float64, shares []float64) (models.MonteCarloResult, error) {
	if err := mc.validate(s0, mu, sigma); err != nil {
		return models.MonteCarloResult{}, err
	}
	if len(shares) == 0 {
		return models.MonteCarloResult{}, insufficientf("schedule is empty")
	}

	total := 0.0
	for d, q := range shares {
		if !finite(q) || q < 0 {
			return models.MonteCarloResult{}, invalidf("shares on day %d must be >= 0, got %v", d+1, q)
		}
		total += q
	}

	shortfall := make([]float64, mc.Simulations)
	err := mc.forEachPath(ctx, func(i int) {
		w := newPathWalker(mc.Seed, i, s0, mu, sigma)
		price := s0
		sum := 0.0
		for t, q := range shares {
			if t > 0 {
				price = w.next()
			}
			sum += q * (s0 - price)
		}
		shortfall[i] = sum
	})
	if err != nil {
		return models.MonteCarloResult{}, err
	}

	return models.MonteCarloResult{
		ArrivalPrice: s0,
		TotalShares:  total,
		Simulations:  mc.Simulations,
		Seed:         mc.Seed,
		Shortfall:    shortfall,
	}, nil
}
