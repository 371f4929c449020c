// Package marketdata turns raw OHLCV bars into the DailyMarketRecord sequence
// consumed by the engine, and dates trading days.
package marketdata

import (
	"math"
	"slices"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// Clean returns a new slice of bars that is de-duplicated by date (first
// occurrence wins), sorted ascending and stripped of rows with Volume <= 0 or
// any non-finite field. The input is not modified.
func Clean(bars []models.Bar) []models.Bar {
	seen := make(map[string]struct{}, len(bars))
	out := make([]models.Bar, 0, len(bars))

	for _, b := range bars {
		key := b.Date.Format("2006-01-02")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if !(b.Volume > 0) || !finiteBar(b) {
			continue
		}
		out = append(out, b)
	}

	slices.SortStableFunc(out, func(a, b models.Bar) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

func finiteBar(b models.Bar) bool {
	for _, v := range [...]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
