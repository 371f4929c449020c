package engine

import (
	"math"
	"slices"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// Summarize computes count, mean, sample standard deviation, range and the
// 5th/50th/95th percentiles of values. An empty sample yields a zero Distribution.
func Summarize(values []float64) models.Distribution {
	if len(values) == 0 {
		return models.Distribution{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean := 0.0
	for _, v := range sorted {
		mean += v
	}
	mean /= float64(len(sorted))

	return models.Distribution{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: sampleStdDev(sorted, mean),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P05:    percentileSorted(sorted, 5),
		P50:    percentileSorted(sorted, 50),
		P95:    percentileSorted(sorted, 95),
	}
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks. Empty input returns NaN.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return percentileSorted(sorted, p)
}

// ValueAtRisk is the confidence quantile of a shortfall sample (losses positive).
func ValueAtRisk(shortfall []float64, confidence float64) (float64, error) {
	if err := checkConfidence(confidence); err != nil {
		return 0, err
	}
	if len(shortfall) == 0 {
		return 0, insufficientf("shortfall sample is empty")
	}
	return Percentile(shortfall, confidence*100), nil
}

// ExpectedShortfall is the mean loss at or beyond ValueAtRisk.
func ExpectedShortfall(shortfall []float64, confidence float64) (float64, error) {
	v, err := ValueAtRisk(shortfall, confidence)
	if err != nil {
		return 0, err
	}
	sum, n := 0.0, 0
	for _, x := range shortfall {
		if x >= v {
			sum += x
			n++
		}
	}
	if n == 0 {
		return v, nil
	}
	return sum / float64(n), nil
}

// ZScore maps the supported confidence levels to one-sided normal quantiles.
// Unknown levels fall back to 95%.
func ZScore(confidence float64) float64 {
	switch confidence {
	case 0.90:
		return 1.28
	case 0.95:
		return 1.65
	case 0.99:
		return 2.33
	default:
		return 1.65
	}
}

// ParametricVaR is the normal approximation mean + z·std.
func ParametricVaR(mean, std, confidence float64) float64 {
	return mean + ZScore(confidence)*std
}

// AnnualizeVolatility scales a daily volatility by sqrt(TradingDaysPerYear).
func AnnualizeVolatility(daily float64) float64 {
	return daily * math.Sqrt(TradingDaysPerYear)
}

func checkConfidence(c float64) error {
	if !finite(c) || c <= 0 || c >= 1 {
		return invalidf("confidence must be in (0, 1), got %v", c)
	}
	return nil
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	switch {
	case p <= 0:
		return sorted[0]
	case p >= 100:
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
