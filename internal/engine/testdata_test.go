package engine

import (
	"math"
	"time"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

var day0 = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

// flatRecords builds n records with identical market state.
func flatRecords(n int, price, adv, vol, spread float64) []models.DailyMarketRecord {
	out := make([]models.DailyMarketRecord, n)
	for i := range out {
		out[i] = models.DailyMarketRecord{
			Date:        day0.AddDate(0, 0, i),
			Close:       price,
			Volume:      adv,
			ADV:         adv,
			Volatility:  vol,
			SpreadProxy: spread,
		}
	}
	return out
}

func undefined() float64 { return math.NaN() }
