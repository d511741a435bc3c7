package models

// MStatsResult is the descriptive-statistics snapshot for one window query.
// It is computed on demand and never stored.
type MStatsResult struct {
	Symbol string  `json:"symbol"`
	Window int     `json:"window"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Last   float64 `json:"last"`
}
