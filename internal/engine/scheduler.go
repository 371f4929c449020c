package engine

import (
	"math"

	"github.com/guttosm/liqrisk/internal/domain/models"
)

const (
	// linearKappaT is the κ·T below which the sinh ratio is replaced by its
	// linear limit (T-t)/T.
	linearKappaT = 1e-9
	// sinhKappaT is the κ·T above which math.Sinh would lose the ratio to overflow.
	sinhKappaT = 20.0
)

// OptimalSchedule returns the Almgren–Chriss trajectory for selling totalShares
// over exactly days trading days.
//
// Parameters:
//   - totalShares: position to liquidate (> 0).
//   - days: horizon T in trading days (>= 1).
//   - volatility: daily price volatility σ (>= 0).
//   - eta: temporary impact coefficient η (> 0).
//   - riskAversion: λ (>= 0). Larger values front-load the trajectory.
//
// Behavior:
//   - κ = sqrt(λσ²/η) and holdings x(t) = X·sinh(κ(T-t))/sinh(κT), t = 0..T.
//   - The trade on day d is x(d-1) - x(d), taken as the remaining gap to the
//     cumulative target X - x(d).
//   - κ·T ≈ 0 uses the uniform limit X/T per day.
//   - x(0) = X and x(T) = 0 are pinned, so the last trade is X minus the
//     earlier ones and summing the steps in order gives X.
func OptimalSchedule(totalShares float64, days int, volatility, eta, riskAversion float64) (models.OptimalTrajectory, error) {
	switch {
	case !finite(totalShares) || totalShares <= 0:
		return models.OptimalTrajectory{}, invalidf("total shares must be > 0, got %v", totalShares)
	case days < 1:
		return models.OptimalTrajectory{}, invalidf("days must be >= 1, got %d", days)
	case !finite(volatility) || volatility < 0:
		return models.OptimalTrajectory{}, invalidf("volatility must be >= 0, got %v", volatility)
	case !finite(eta) || eta <= 0:
		return models.OptimalTrajectory{}, invalidf("eta must be > 0, got %v", eta)
	case !finite(riskAversion) || riskAversion < 0:
		return models.OptimalTrajectory{}, invalidf("risk aversion must be >= 0, got %v", riskAversion)
	}

	kappa := math.Sqrt(riskAversion * volatility * volatility / eta)

	holdings := make([]float64, days+1)
	holdings[0] = totalShares
	for t := 1; t < days; t++ {
		if kappa*float64(days) < linearKappaT {
			holdings[t] = totalShares * float64(days-t) / float64(days)
			continue
		}
		holdings[t] = totalShares * holdingFraction(kappa, days, t)
	}
	holdings[days] = 0

	// Each trade closes the gap to the cumulative target X - x(d).
	steps := make([]models.TrajectoryStep, days)
	traded := 0.0
	for d := 1; d <= days; d++ {
		q := math.Max(0, (totalShares-holdings[d])-traded)
		traded += q
		steps[d-1] = models.TrajectoryStep{
			Day:          d,
			SharesTraded: q,
			Holdings:     holdings[d],
		}
	}

	return models.OptimalTrajectory{
		TotalShares: totalShares,
		Days:        days,
		Kappa:       kappa,
		Steps:       steps,
	}, nil
}

// holdingFraction evaluates sinh(κ(T-t))/sinh(κT) for 0 <= t <= T and κ > 0.
func holdingFraction(kappa float64, days, t int) float64 {
	T := float64(days)
	tt := float64(t)
	kT := kappa * T

	switch {
	case kT < sinhKappaT:
		return math.Sinh(kappa*(T-tt)) / math.Sinh(kT)
	default:
		// sinh(a)/sinh(b) = e^{a-b} (1 - e^{-2a}) / (1 - e^{-2b})
		return math.Exp(-kappa*tt) * -math.Expm1(-2*kappa*(T-tt)) / -math.Expm1(-2*kT)
	}
}
