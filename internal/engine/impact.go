package engine

import (
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// DefaultImpactK is the square-root law coefficient used when none is configured.
const DefaultImpactK = 1.0

// Cost prices a block of shares traded in one day.
//
// Parameters:
//   - shares: block size (>= 0).
//   - price: execution reference price (> 0).
//   - adv: average daily volume (> 0).
//   - volatility: daily return volatility.
//   - spreadProxy: relative spread estimate, e.g. 0.01 for 1%.
//   - k: impact coefficient.
//
// Behavior:
//   - SpreadCost = spreadProxy * price / 2 * shares (half-spread crossing).
//   - ParticipationRate = shares / adv.
//   - ImpactCost = k * volatility * sqrt(ParticipationRate) * shares.
//
// Returns ErrInvalidInput when a precondition is violated.
func Cost(shares, price, adv, volatility, spreadProxy, k float64) (models.CostBreakdown, error) {
	switch {
	case !finite(shares) || shares < 0:
		return models.CostBreakdown{}, invalidf("shares must be >= 0, got %v", shares)
	case !finite(price) || price <= 0:
		return models.CostBreakdown{}, invalidf("price must be > 0, got %v", price)
	case !finite(adv) || adv <= 0:
		return models.CostBreakdown{}, invalidf("adv must be > 0, got %v", adv)
	case !finite(volatility) || !finite(spreadProxy) || !finite(k):
		return models.CostBreakdown{}, invalidf("volatility, spread proxy and k must be finite")
	}

	spread := spreadProxy * price / 2 * shares
	rate := shares / adv
	impact := k * volatility * math.Sqrt(rate) * shares

	return models.CostBreakdown{
		SpreadCost:        spread,
		ImpactCost:        impact,
		TotalCost:         spread + impact,
		ParticipationRate: rate,
	}, nil
}
