package engine

import (
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// Profile sizes a position against the most recent record.
//
// EstimatedDays is the number of days needed at the participation cap
// (position / (rate · ADV)). ADV-derived fields stay zero when the latest ADV
// is not usable.
func Profile(records []models.DailyMarketRecord, totalShares, participationRate float64) (models.LiquidityProfile, error) {
	if len(records) == 0 {
		return models.LiquidityProfile{}, insufficientf("no market records")
	}
	if !finite(totalShares) || totalShares <= 0 {
		return models.LiquidityProfile{}, invalidf("total shares must be > 0, got %v", totalShares)
	}
	if !finite(participationRate) || participationRate <= 0 {
		return models.LiquidityProfile{}, invalidf("participation rate must be > 0, got %v", participationRate)
	}

	last := records[len(records)-1]
	if !finite(last.Close) || last.Close <= 0 {
		return models.LiquidityProfile{}, invalidf("close on %s must be > 0, got %v", last.Date.Format("2006-01-02"), last.Close)
	}

	p := models.LiquidityProfile{
		AsOf:                 last.Date,
		Price:                last.Close,
		Volatility:           last.Volatility,
		AnnualizedVolatility: AnnualizeVolatility(last.Volatility),
		ADV:                  last.ADV,
		PositionValue:        totalShares * last.Close,
	}
	if last.HasADV() {
		p.DollarADV = last.ADV * last.Close
		p.PositionToADV = totalShares / last.ADV
		p.EstimatedDays = math.Ceil(totalShares / (participationRate * last.ADV))
	}
	return p, nil
}
