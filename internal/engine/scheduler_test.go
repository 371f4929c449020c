package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimalSchedule_RiskNeutralIsUniform(t *testing.T) {
	traj, err := OptimalSchedule(100_000, 10, 0.02, 1.0, 0)
	require.NoError(t, err)

	require.Len(t, traj.Steps, 10)
	assert.Zero(t, traj.Kappa)
	for i, s := range traj.Steps {
		assert.Equal(t, i+1, s.Day)
		assert.InDelta(t, 10_000.0, s.SharesTraded, 1e-9)
	}
	assert.Zero(t, traj.Steps[9].Holdings)
}

func TestOptimalSchedule_SumsToTotal(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		days         int
		vol, eta, ra float64
	}{
		{"kappa zero", 123_456, 7, 0.02, 1, 0},
		{"moderate kappa", 1_000_000, 20, 0.03, 0.5, 10},
		{"tiny kappa", 50_000, 5, 1e-12, 1, 1e-6},
		{"large kappa", 200_000, 30, 0.5, 0.01, 100},
		{"single day", 42, 1, 0.02, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, err := OptimalSchedule(tt.total, tt.days, tt.vol, tt.eta, tt.ra)
			require.NoError(t, err)
			require.Len(t, traj.Steps, tt.days)

			sum := 0.0
			for _, s := range traj.Steps {
				assert.False(t, math.IsNaN(s.SharesTraded))
				assert.GreaterOrEqual(t, s.SharesTraded, 0.0)
				sum += s.SharesTraded
			}
			assert.InDelta(t, tt.total, sum, tt.total*1e-15)
			assert.Zero(t, traj.Steps[tt.days-1].Holdings)
		})
	}
}

func TestOptimalSchedule_FrontLoadsWithRiskAversion(t *testing.T) {
	prevFirst := 0.0
	for _, ra := range []float64{0, 0.5, 2, 10, 50} {
		traj, err := OptimalSchedule(100_000, 10, 0.05, 0.01, ra)
		require.NoError(t, err)

		first := traj.Steps[0].SharesTraded
		assert.GreaterOrEqual(t, first, prevFirst-1e-9, "risk aversion %v", ra)
		prevFirst = first

		for i := 1; i < len(traj.Steps); i++ {
			assert.LessOrEqual(t, traj.Steps[i].SharesTraded, traj.Steps[i-1].SharesTraded+1e-9)
		}
	}
}

func TestOptimalSchedule_SumIsExact(t *testing.T) {
	for _, ra := range []float64{0, 1, 25} {
		traj, err := OptimalSchedule(100_000, 7, 0.03, 0.02, ra)
		require.NoError(t, err)

		sum := 0.0
		for _, s := range traj.Steps {
			sum += s.SharesTraded
		}
		assert.Equal(t, 100_000.0, sum, "risk aversion %v", ra)
	}
}

func TestOptimalSchedule_CumulativeFractionRisesWithRiskAversion(t *testing.T) {
	const total, days = 100_000.0, 10
	cumulative := func(ra float64) []float64 {
		traj, err := OptimalSchedule(total, days, 0.05, 0.01, ra)
		require.NoError(t, err)
		out := make([]float64, days)
		sum := 0.0
		for i, s := range traj.Steps {
			sum += s.SharesTraded
			out[i] = sum / total
		}
		return out
	}

	// κ·T runs from 0 to about 16 over these values.
	levels := []float64{0, 0.1, 0.5, 2, 10}
	prev := cumulative(levels[0])
	for _, ra := range levels[1:] {
		cur := cumulative(ra)
		for d := 0; d < days-1; d++ {
			assert.Greater(t, cur[d], prev[d], "day %d, risk aversion %v", d+1, ra)
		}
		assert.InDelta(t, 1.0, cur[days-1], 1e-12)
		prev = cur
	}
}

func TestOptimalSchedule_InvalidInput(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		days         int
		vol, eta, ra float64
	}{
		{"zero shares", 0, 10, 0.02, 1, 0},
		{"zero days", 100, 0, 0.02, 1, 0},
		{"zero eta", 100, 10, 0.02, 0, 0},
		{"negative volatility", 100, 10, -0.1, 1, 0},
		{"negative risk aversion", 100, 10, 0.02, 1, -1},
		{"nan volatility", 100, 10, math.NaN(), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := OptimalSchedule(tt.total, tt.days, tt.vol, tt.eta, tt.ra)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestHoldingFraction_BranchesAgree(t *testing.T) {
	// Both forms are exact; compare them where sinh is still well conditioned.
	kappa, days := 0.9, 20
	for tt := 0; tt <= days; tt++ {
		T := float64(days)
		stable := math.Exp(-kappa*float64(tt)) * -math.Expm1(-2*kappa*(T-float64(tt))) / -math.Expm1(-2*kappa*T)
		assert.InDelta(t, holdingFraction(kappa, days, tt), stable, 1e-12)
	}
}
