package marketdata

import (
	"fmt"
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
	"github.com/guttosm/liqrisk/internal/engine"
)

// Default rolling windows, in trading days.
const (
	DefaultADVWindow = 30
	DefaultVolWindow = 30
)

// BuildRecords derives one DailyMarketRecord per bar.
//
// Behavior:
//   - Returns are simple close-to-close changes; the first bar has none.
//   - ADV is the mean Volume over the trailing advWindow bars.
//   - Volatility is the sample standard deviation (n-1) of the trailing
//     volWindow returns.
//   - SpreadProxy is (High - Low) / Close.
//   - Rolling fields are NaN until their window is fully populated.
//
// Bars are expected to be cleaned and in ascending date order.
func BuildRecords(bars []models.Bar, advWindow, volWindow int) ([]models.DailyMarketRecord, error) {
	if advWindow < 1 || volWindow < 2 {
		return nil, fmt.Errorf("%w: adv window must be >= 1 and volatility window >= 2, got %d and %d",
			engine.ErrInvalidInput, advWindow, volWindow)
	}

	n := len(bars)
	returns := make([]float64, n)
	for i := range bars {
		if i == 0 || bars[i-1].Close == 0 {
			returns[i] = math.NaN()
			continue
		}
		returns[i] = bars[i].Close/bars[i-1].Close - 1
	}

	out := make([]models.DailyMarketRecord, n)
	volSum := 0.0
	for i, b := range bars {
		volSum += b.Volume
		if i >= advWindow {
			volSum -= bars[i-advWindow].Volume
		}

		rec := models.DailyMarketRecord{
			Date:        b.Date,
			Close:       b.Close,
			Volume:      b.Volume,
			ADV:         math.NaN(),
			Volatility:  math.NaN(),
			SpreadProxy: math.NaN(),
		}
		if i+1 >= advWindow {
			rec.ADV = volSum / float64(advWindow)
		}
		if i+1 >= volWindow {
			rec.Volatility = rollingStd(returns[i+1-volWindow : i+1])
		}
		if b.Close != 0 {
			rec.SpreadProxy = (b.High - b.Low) / b.Close
		}
		out[i] = rec
	}
	return out, nil
}

// rollingStd is NaN when any value in the window is NaN.
func rollingStd(window []float64) float64 {
	mean := 0.0
	for _, v := range window {
		if math.IsNaN(v) {
			return math.NaN()
		}
		mean += v
	}
	mean /= float64(len(window))

	ss := 0.0
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(window)-1))
}

// Ready drops records whose rolling fields are still undefined.
func Ready(records []models.DailyMarketRecord) []models.DailyMarketRecord {
	out := make([]models.DailyMarketRecord, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			out = append(out, r)
		}
	}
	return out
}

// Prepare runs Clean, BuildRecords and Ready. It returns
// engine.ErrInsufficientData when no record survives, which happens whenever
// the history is shorter than the rolling windows.
func Prepare(bars []models.Bar, advWindow, volWindow int) ([]models.DailyMarketRecord, error) {
	cleaned := Clean(bars)
	records, err := BuildRecords(cleaned, advWindow, volWindow)
	if err != nil {
		return nil, err
	}
	ready := Ready(records)
	if len(ready) == 0 {
		return nil, fmt.Errorf("%w: %d usable bars for windows adv=%d vol=%d",
			engine.ErrInsufficientData, len(cleaned), advWindow, volWindow)
	}
	return ready, nil
}
