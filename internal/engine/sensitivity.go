package engine

import (
	"context"
	"runtime"

	"github.com/guttosm/liqrisk/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Sweep re-runs Liquidate once per participation rate and reports the outcome
// of each run in input order. Runs share nothing and are executed concurrently
// on up to workers goroutines (<= 0 means runtime.NumCPU()).
func Sweep(ctx context.Context, records []models.DailyMarketRecord, totalShares float64, rates []float64, k float64, workers int) ([]models.SensitivityPoint, error) {
	if len(rates) == 0 {
		return nil, invalidf("participation rate range is empty")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	points := make([]models.SensitivityPoint, len(rates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, rate := range rates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			liq, err := Liquidate(records, totalShares, rate, k)
			if err != nil {
				return err
			}
			points[i] = models.SensitivityPoint{
				ParticipationRate: rate,
				TotalCost:         liq.Schedule.TotalCost(),
				SharesTraded:      liq.Schedule.TotalShares(),
				Days:              liq.Schedule.Horizon(),
				Status:            liq.Status(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// ApplyStress returns a copy of records with Volatility scaled by volMultiplier
// and ADV scaled by advMultiplier. Undefined (NaN) fields stay undefined and
// the input slice is left untouched.
func ApplyStress(records []models.DailyMarketRecord, volMultiplier, advMultiplier float64) ([]models.DailyMarketRecord, error) {
	if !finite(volMultiplier) || volMultiplier < 0 {
		return nil, invalidf("volatility multiplier must be >= 0, got %v", volMultiplier)
	}
	if !finite(advMultiplier) || advMultiplier < 0 {
		return nil, invalidf("ADV multiplier must be >= 0, got %v", advMultiplier)
	}

	out := make([]models.DailyMarketRecord, len(records))
	for i, r := range records {
		r.Volatility *= volMultiplier
		r.ADV *= advMultiplier
		out[i] = r
	}
	return out, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
