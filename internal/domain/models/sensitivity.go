package models

// SensitivityPoint is the outcome of one liquidation run in a participation sweep.
type SensitivityPoint struct {
	ParticipationRate float64           `json:"participation_rate"`
	TotalCost         float64           `json:"total_cost"`
	SharesTraded      float64           `json:"shares_traded"`
	Days              int               `json:"days"`
	Status            LiquidationStatus `json:"status"`
}
