// Package engine is the execution-cost modeling core.
//
// It contains the square-root market-impact model, the participation-rate
// constrained liquidation fold, the closed-form Almgren–Chriss scheduler, a
// seeded geometric Brownian motion Monte Carlo engine and the participation
// sensitivity sweep. Everything here is synchronous, free of I/O and
// deterministic given its inputs (and seed, for Monte Carlo).
//
// Cost conventions:
//   - Cost, Liquidate and Sweep report deterministic friction (spread + impact)
//     in currency units.
//   - LiquidationCost reports implementation shortfall against the arrival price
//     per simulated path. The two are never summed by this package.
package engine
