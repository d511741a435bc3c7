package interfaces

import "trade-stats/src/models"

// -----------------------------------------------------------------------------
// IJournal defines the contract for the write-behind observation journal.
// The journal is best-effort: the engine never reads it back and a failed
// write never fails an API call.
// -----------------------------------------------------------------------------

type IJournal interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveObservationsBulk inserts a batch of recorded observations.
	SaveObservationsBulk(obs []models.MObservation) error

	// -----------------------------------------------------------------------------

	// CleanupOldData removes rows older than the retention policy.
	CleanupOldData() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
