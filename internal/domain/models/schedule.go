package models

import "time"

// CostBreakdown is the output of the impact model for one block of shares.
type CostBreakdown struct {
	SpreadCost        float64 `json:"spread_cost"`
	ImpactCost        float64 `json:"impact_cost"`
	TotalCost         float64 `json:"total_cost"`
	ParticipationRate float64 `json:"participation_rate"`
}

// ScheduleEntry is one traded day of a participation-constrained liquidation.
// Day is the 1-based position of the entry in the schedule.
type ScheduleEntry struct {
	Day          int       `json:"day"`
	Date         time.Time `json:"date"`
	SharesTraded float64   `json:"shares_traded"`
	CostBreakdown
}

// Schedule is an ordered execution schedule. Days without a trade are omitted.
type Schedule []ScheduleEntry

// TotalShares sums SharesTraded across the schedule.
func (s Schedule) TotalShares() float64 {
	total := 0.0
	for _, e := range s {
		total += e.SharesTraded
	}
	return total
}

// TotalCost sums TotalCost (spread + impact) across the schedule.
func (s Schedule) TotalCost() float64 {
	total := 0.0
	for _, e := range s {
		total += e.TotalCost
	}
	return total
}

// Horizon is the number of traded days.
func (s Schedule) Horizon() int { return len(s) }

// Shares returns the per-day traded shares, in schedule order.
func (s Schedule) Shares() []float64 {
	out := make([]float64, len(s))
	for i, e := range s {
		out[i] = e.SharesTraded
	}
	return out
}

// LiquidationStatus classifies how a liquidation run ended.
// Keep these values stable; they are part of the API contract.
type LiquidationStatus string

const (
	// LiquidationComplete means the whole position was sold.
	LiquidationComplete LiquidationStatus = "COMPLETE"
	// LiquidationIncomplete means records ran out with shares still held.
	LiquidationIncomplete LiquidationStatus = "INCOMPLETE"
	// LiquidationNoProgress means no day allowed any trade under the constraints.
	LiquidationNoProgress LiquidationStatus = "NO_PROGRESS"
)

// Liquidation is the result of one participation-constrained run.
type Liquidation struct {
	Schedule        Schedule `json:"schedule"`
	TotalShares     float64  `json:"total_shares"`
	RemainingShares float64  `json:"remaining_shares"`
}

// Status reports whether the run completed, stalled part-way or never traded.
func (l Liquidation) Status() LiquidationStatus {
	switch {
	case len(l.Schedule) == 0:
		return LiquidationNoProgress
	case l.RemainingShares > 0:
		return LiquidationIncomplete
	default:
		return LiquidationComplete
	}
}
