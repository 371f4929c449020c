package engine

import (
	"fmt"
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// Liquidate sells totalShares through the records in chronological order, never
// trading more than participationRate * ADV on a given day.
//
// Behavior:
//   - Remaining shares are carried as explicit fold state and never increase.
//   - Records without a usable ADV (undefined or <= 0) are skipped; unused
//     capacity does not carry over to the next day.
//   - The fold stops as soon as nothing remains.
//   - Running out of records is not an error: the returned Liquidation reports
//     LiquidationIncomplete, or LiquidationNoProgress when no day traded.
//
// Returns ErrInvalidInput for a non-positive position or rate, or when a traded
// day cannot be priced (e.g. Close <= 0).
func Liquidate(records []models.DailyMarketRecord, totalShares, participationRate, k float64) (models.Liquidation, error) {
	if !finite(totalShares) || totalShares <= 0 {
		return models.Liquidation{}, invalidf("total shares must be > 0, got %v", totalShares)
	}
	if !finite(participationRate) || participationRate <= 0 {
		return models.Liquidation{}, invalidf("participation rate must be > 0, got %v", participationRate)
	}

	remaining := totalShares
	schedule := make(models.Schedule, 0)

	for _, rec := range records {
		if remaining <= 0 {
			break
		}
		if !rec.HasADV() {
			continue
		}

		traded := math.Min(remaining, participationRate*rec.ADV)
		if traded <= 0 {
			continue
		}

		cost, err := Cost(traded, rec.Close, rec.ADV, rec.Volatility, rec.SpreadProxy, k)
		if err != nil {
			return models.Liquidation{}, fmt.Errorf("record %s: %w", rec.Date.Format("2006-01-02"), err)
		}

		schedule = append(schedule, models.ScheduleEntry{
			Day:           len(schedule) + 1,
			Date:          rec.Date,
			SharesTraded:  traded,
			CostBreakdown: cost,
		})
		remaining -= traded
	}

	return models.Liquidation{
		Schedule:        schedule,
		TotalShares:     totalShares,
		RemainingShares: math.Max(remaining, 0),
	}, nil
}
