package models

import "time"

// Bar is one raw daily OHLCV row as delivered by the market data source
// (one line of a "<TICKER>_raw.csv" file or one row of market_bars).
//
// Column order of the CSV export:
//  1. Date
//  2. Open
//  3. High
//  4. Low
//  5. Close
//  6. Volume
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}
