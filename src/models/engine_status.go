package models

// MEngineStatus summarizes the in-memory engine for health reporting.
type MEngineStatus struct {
	Symbols           int     `json:"symbols"`
	TotalObservations int64   `json:"total_observations"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}
