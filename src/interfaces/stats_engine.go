package interfaces

import "trade-stats/src/models"

// -----------------------------------------------------------------------------
// IStatsEngine defines the contract the transport layers program against.
// -----------------------------------------------------------------------------

type IStatsEngine interface {

	// -----------------------------------------------------------------------------

	// AddBatch records an ordered batch of observations for symbol.
	AddBatch(symbol string, values []float64) error

	// -----------------------------------------------------------------------------

	// Stats computes descriptive statistics over the last k observations.
	Stats(symbol string, k int) (models.MStatsResult, error)

	// -----------------------------------------------------------------------------

	// Symbols returns all registered symbols.
	Symbols() []string

	// -----------------------------------------------------------------------------

	// Status summarizes the engine for health reporting.
	Status() models.MEngineStatus
}
