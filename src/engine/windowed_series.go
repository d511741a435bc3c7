package engine

import (
	"sync"

	"trade-stats/src/engine/core"
	"trade-stats/src/helpers"
	"trade-stats/src/models"
)

// -----------------------------------------------------------------------------
// WindowedSeries holds one symbol's full observation history in arrival order
// and computes statistics over the tail window of size K. History is
// append-only: values are never reordered, mutated, or evicted, so "last K"
// is purely a query-time view.
// -----------------------------------------------------------------------------

type WindowedSeries struct {
	symbol  string
	mu      sync.RWMutex
	history []float64
}

// -----------------------------------------------------------------------------

// NewWindowedSeries creates an empty series for symbol.
func NewWindowedSeries(symbol string) *WindowedSeries {
	return &WindowedSeries{symbol: symbol}
}

// -----------------------------------------------------------------------------

// AppendBatch appends all values to the history, preserving their relative
// order. The whole batch is validated before anything is appended: a single
// non-finite value rejects the batch atomically, leaving history unchanged.
// The write lock is held for the full append, so one batch always lands as
// a contiguous run relative to concurrent batches.
func (s *WindowedSeries) AppendBatch(values []float64) error {
	if err := ValidateBatch(values); err != nil {
		return err
	}

	s.mu.Lock()
	s.history = append(s.history, values...)
	s.mu.Unlock()

	return nil
}

// -----------------------------------------------------------------------------

// Stats computes descriptive statistics over the last min(k, len) values.
// The tail is copied out under the read lock, so the computation always sees
// a consistent snapshot: appends that commit mid-computation are ignored.
func (s *WindowedSeries) Stats(k int) (models.MStatsResult, error) {
	if k < 1 {
		return models.MStatsResult{}, helpers.NewInvalidWindowSize(k)
	}

	tail := s.Tail(k)
	if len(tail) == 0 {
		return models.MStatsResult{}, helpers.NewEmptyWindow()
	}

	min, max := core.CalculateMinMax(tail)
	mean, std := core.CalculateMeanStd(tail)
	last := tail[len(tail)-1]

	// CalculateMedian sorts its input, so it goes last; tail is already a
	// private copy.
	median := core.CalculateMedian(tail)

	return models.MStatsResult{
		Symbol: s.symbol,
		Window: k,
		Count:  len(tail),
		Min:    min,
		Max:    max,
		Mean:   mean,
		StdDev: std,
		Median: median,
		Last:   last,
	}, nil
}

// -----------------------------------------------------------------------------

// Tail returns a copy of the last min(k, len) values in arrival order.
func (s *WindowedSeries) Tail(k int) []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 || len(s.history) == 0 {
		return nil
	}

	count := k
	if count > len(s.history) {
		count = len(s.history)
	}

	tail := make([]float64, count)
	copy(tail, s.history[len(s.history)-count:])
	return tail
}

// -----------------------------------------------------------------------------

// Len returns the current number of observations.
func (s *WindowedSeries) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// -----------------------------------------------------------------------------

// Symbol returns the symbol this series belongs to.
func (s *WindowedSeries) Symbol() string {
	return s.symbol
}
