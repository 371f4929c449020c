package models

import "time"

// TrajectoryStep is one day of an Almgren–Chriss trajectory.
// Holdings is the position left after the day's trade.
type TrajectoryStep struct {
	Day          int       `json:"day"`
	Date         time.Time `json:"date,omitempty"`
	SharesTraded float64   `json:"shares_traded"`
	Holdings     float64   `json:"holdings"`
}

// OptimalTrajectory spans exactly Days steps and sells exactly TotalShares.
type OptimalTrajectory struct {
	TotalShares float64          `json:"total_shares"`
	Days        int              `json:"days"`
	Kappa       float64          `json:"kappa"`
	Steps       []TrajectoryStep `json:"steps"`
}

// Shares returns the per-day traded shares, in day order.
func (t OptimalTrajectory) Shares() []float64 {
	out := make([]float64, len(t.Steps))
	for i, s := range t.Steps {
		out[i] = s.SharesTraded
	}
	return out
}
