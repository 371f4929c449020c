package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricePaths_Shape(t *testing.T) {
	mc := MonteCarlo{Simulations: 64, Seed: 7, Workers: 3}

	paths, err := mc.PricePaths(context.Background(), 25, 0.001, 0.02, 15)
	require.NoError(t, err)

	require.Len(t, paths, 16)
	for _, row := range paths {
		require.Len(t, row, 64)
		for _, p := range row {
			assert.Greater(t, p, 0.0)
		}
	}
	for _, p := range paths[0] {
		assert.Equal(t, 25.0, p)
	}
}

func TestPricePaths_MartingaleWithoutDrift(t *testing.T) {
	const s0 = 100.0
	mc := MonteCarlo{Simulations: 20_000, Seed: 42}

	paths, err := mc.PricePaths(context.Background(), s0, 0, 0.02, 10)
	require.NoError(t, err)

	for _, day := range []int{1, 5, 10} {
		mean := 0.0
		for _, p := range paths[day] {
			mean += p
		}
		mean /= float64(len(paths[day]))
		assert.InDelta(t, s0, mean, s0*0.005, "day %d", day)
	}
}

func TestPricePaths_DeterministicAcrossWorkers(t *testing.T) {
	ctx := context.Background()
	one, err := MonteCarlo{Simulations: 500, Seed: 99, Workers: 1}.PricePaths(ctx, 10, 0.0005, 0.03, 8)
	require.NoError(t, err)
	many, err := MonteCarlo{Simulations: 500, Seed: 99, Workers: 16}.PricePaths(ctx, 10, 0.0005, 0.03, 8)
	require.NoError(t, err)
	assert.Equal(t, one, many)

	other, err := MonteCarlo{Simulations: 500, Seed: 100, Workers: 1}.PricePaths(ctx, 10, 0.0005, 0.03, 8)
	require.NoError(t, err)
	assert.NotEqual(t, one, other)
}

func TestPricePaths_ZeroSigmaZeroDriftIsFlat(t *testing.T) {
	paths, err := MonteCarlo{Simulations: 10, Seed: 1}.PricePaths(context.Background(), 30, 0, 0, 5)
	require.NoError(t, err)
	for _, row := range paths {
		for _, p := range row {
			assert.Equal(t, 30.0, p)
		}
	}
}

func TestLiquidationCost_MatchesPricePaths(t *testing.T) {
	ctx := context.Background()
	mc := MonteCarlo{Simulations: 200, Seed: 5, Workers: 4}
	shares := []float64{40_000, 30_000, 20_000, 10_000}
	const s0 = 50.0

	res, err := mc.LiquidationCost(ctx, s0, 0, 0.025, shares)
	require.NoError(t, err)
	paths, err := mc.PricePaths(ctx, s0, 0, 0.025, len(shares))
	require.NoError(t, err)

	require.Len(t, res.Shortfall, 200)
	assert.Equal(t, 100_000.0, res.TotalShares)
	assert.Equal(t, s0, res.ArrivalPrice)
	assert.Equal(t, 5_000_000.0, res.ArrivalValue())

	for i := range res.Shortfall {
		want := 0.0
		for d, q := range shares {
			want += q * (s0 - paths[d][i])
		}
		assert.InDelta(t, want, res.Shortfall[i], 1e-6)

		proceeds := 0.0
		for d, q := range shares {
			proceeds += q * paths[d][i]
		}
		assert.InDelta(t, proceeds, res.Proceeds(i), 1e-6)
	}
}

func TestLiquidationCost_FirstDayAtArrivalPrice(t *testing.T) {
	res, err := MonteCarlo{Simulations: 50, Seed: 3}.LiquidationCost(context.Background(), 20, 0.01, 0.5, []float64{1_000})
	require.NoError(t, err)
	for _, s := range res.Shortfall {
		assert.Zero(t, s)
	}
}

func TestLiquidationCost_Deterministic(t *testing.T) {
	ctx := context.Background()
	shares := []float64{100, 100, 100, 100, 100}

	a, err := MonteCarlo{Simulations: 1_000, Seed: 42, Workers: 2}.LiquidationCost(ctx, 10, 0, 0.02, shares)
	require.NoError(t, err)
	b, err := MonteCarlo{Simulations: 1_000, Seed: 42, Workers: 7}.LiquidationCost(ctx, 10, 0, 0.02, shares)
	require.NoError(t, err)

	assert.Equal(t, a.Shortfall, b.Shortfall)
}

func TestLiquidationCost_Errors(t *testing.T) {
	ctx := context.Background()
	mc := MonteCarlo{Simulations: 10, Seed: 1}

	_, err := mc.LiquidationCost(ctx, 10, 0, 0.02, nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = mc.LiquidationCost(ctx, 0, 0, 0.02, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = mc.LiquidationCost(ctx, 10, 0, -0.1, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = mc.LiquidationCost(ctx, 10, math.NaN(), 0.1, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = mc.LiquidationCost(ctx, 10, 0, 0.1, []float64{1, -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = MonteCarlo{}.LiquidationCost(ctx, 10, 0, 0.1, []float64{1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = mc.PricePaths(ctx, 10, 0, 0.1, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLiquidationCost_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MonteCarlo{Simulations: 100, Seed: 1}.LiquidationCost(ctx, 10, 0, 0.02, []float64{1, 2, 3})
	require.ErrorIs(t, err, context.Canceled)
}
