package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// tradingDay is the GBM time step: one trading day.
const tradingDay = 1.0

// MonteCarlo configures a seeded, parallel Monte Carlo run.
//
// Fields:
//   - Simulations: number of independent price paths (>= 1).
//   - Seed: base seed. Path i draws from its own PCG stream keyed by (Seed, i),
//     so results do not depend on Workers or scheduling.
//   - Workers: maximum concurrent goroutines; <= 0 means runtime.NumCPU().
type MonteCarlo struct {
	Simulations int
	Seed        uint64
	Workers     int
}

// PricePaths simulates geometric Brownian motion paths.
//
// The result is indexed [t][simulation] with t = 0..days; row 0 equals s0 and
// each later step applies exp((mu - sigma²/2)·dt + sigma·sqrt(dt)·Z) with dt = 1
// and Z standard normal, independent across time and simulation.
func (mc MonteCarlo) PricePaths(ctx context.Context, s0, mu, sigma float64, days int) ([][]float64, error) {
	if err := mc.validate(s0, mu, sigma); err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, invalidf("days must be >= 0, got %d", days)
	}

	paths := make([][]float64, days+1)
	for t := range paths {
		paths[t] = make([]float64, mc.Simulations)
	}

	err := mc.forEachPath(ctx, func(i int) {
		w := newPathWalker(mc.Seed, i, s0, mu, sigma)
		paths[0][i] = s0
		for t := 1; t <= days; t++ {
			paths[t][i] = w.next()
		}
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (mc MonteCarlo) validate(s0, mu, sigma float64) error {
	switch {
	case mc.Simulations < 1:
		return invalidf("simulations must be >= 1, got %d", mc.Simulations)
	case !finite(s0) || s0 <= 0:
		return invalidf("initial price must be > 0, got %v", s0)
	case !finite(mu):
		return invalidf("drift must be finite, got %v", mu)
	case !finite(sigma) || sigma < 0:
		return invalidf("sigma must be >= 0, got %v", sigma)
	}
	return nil
}

// forEachPath runs fn for every path index on a bounded errgroup. Paths are
// handed out in contiguous blocks; fn must only write to slots owned by i.
func (mc MonteCarlo) forEachPath(ctx context.Context, fn func(i int)) error {
	workers := mc.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	block := (mc.Simulations + workers*4 - 1) / (workers * 4)
	if block < 1 {
		block = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < mc.Simulations; lo += block {
		lo, hi := lo, min(lo+block, mc.Simulations)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return g.Wait()
}

// pathWalker advances a single GBM path one day at a time.
type pathWalker struct {
	rng   *rand.Rand
	price float64
	drift float64
	vol   float64
}

func newPathWalker(seed uint64, path int, s0, mu, sigma float64) *pathWalker {
	return &pathWalker{
		rng:   rand.New(rand.NewPCG(seed, uint64(path))),
		price: s0,
		drift: (mu - 0.5*sigma*sigma) * tradingDay,
		vol:   sigma * math.Sqrt(tradingDay),
	}
}

func (w *pathWalker) next() float64 {
	w.price *= math.Exp(w.drift + w.vol*w.rng.NormFloat64())
	return w.price
}
