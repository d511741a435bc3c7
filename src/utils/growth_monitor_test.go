package utils

import (
	"testing"
	"time"

	"trade-stats/src/logger"
	"trade-stats/src/models"
)

// fakeEngine satisfies interfaces.IStatsEngine for monitor tests.
type fakeEngine struct{}

func (fakeEngine) AddBatch(string, []float64) error { return nil }

func (fakeEngine) Stats(string, int) (models.MStatsResult, error) {
	return models.MStatsResult{}, nil
}

func (fakeEngine) Symbols() []string { return []string{"AAPL"} }

func (fakeEngine) Status() models.MEngineStatus {
	return models.MEngineStatus{Symbols: 1, TotalObservations: 42}
}

func TestGrowthMonitor_StartStop(t *testing.T) {
	gm := NewGrowthMonitor(fakeEngine{}, 1, time.Millisecond, logger.NewLogger(nil, "test"))
	gm.Start()

	// Let at least one report fire
	time.Sleep(20 * time.Millisecond)
	gm.Stop()
}

func TestGrowthMonitor_ReportWithoutBudget(t *testing.T) {
	gm := NewGrowthMonitor(fakeEngine{}, 0, time.Minute, logger.NewLogger(nil, "test"))
	gm.report()
}
