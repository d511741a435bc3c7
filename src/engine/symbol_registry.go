package engine

import (
	"math"
	"sync"
	"time"

	"trade-stats/src/helpers"
	"trade-stats/src/logger"
	"trade-stats/src/models"
)

// -----------------------------------------------------------------------------
// SymbolRegistry maps symbols to their WindowedSeries, creating series lazily
// on first successful append. It is the single long-lived owner of all
// per-symbol state; entries are never pruned.
// -----------------------------------------------------------------------------

type SymbolRegistry struct {
	Config models.MEngineConfig
	Logger *logger.Logger

	mu        sync.RWMutex
	series    map[string]*WindowedSeries
	startedAt time.Time
}

// -----------------------------------------------------------------------------

// NewSymbolRegistry creates an empty registry.
func NewSymbolRegistry(cfg models.MEngineConfig, log *logger.Logger) *SymbolRegistry {
	return &SymbolRegistry{
		Config:    cfg,
		Logger:    log,
		series:    make(map[string]*WindowedSeries),
		startedAt: time.Now(),
	}
}

// -----------------------------------------------------------------------------

// AddBatch validates the symbol and the whole batch, then resolves (or
// atomically creates) the symbol's series and appends all values to it.
// Validation runs before the series is created, so a rejected batch never
// registers a symbol: a symbol present in the registry always has history.
func (r *SymbolRegistry) AddBatch(symbol string, values []float64) error {
	if err := r.validateSymbol(symbol); err != nil {
		return err
	}

	if len(values) == 0 {
		return helpers.NewInvalidValue(0, "batch must contain at least one value")
	}
	if len(values) > r.Config.MaxBatchSize {
		return helpers.NewInvalidValue(r.Config.MaxBatchSize,
			"batch exceeds maximum size")
	}
	if err := ValidateBatch(values); err != nil {
		return err
	}

	return r.getOrCreate(symbol).AppendBatch(values)
}

// -----------------------------------------------------------------------------

// Stats resolves the series for symbol and computes statistics over its last
// k values. A symbol with no recorded history fails with UnknownSymbol.
func (r *SymbolRegistry) Stats(symbol string, k int) (models.MStatsResult, error) {
	r.mu.RLock()
	s, ok := r.series[symbol]
	r.mu.RUnlock()

	if !ok {
		return models.MStatsResult{}, helpers.NewUnknownSymbol(symbol)
	}
	return s.Stats(k)
}

// -----------------------------------------------------------------------------

// getOrCreate resolves the series for symbol, constructing and publishing it
// exactly once. Double-checked under the registry lock so two concurrent
// first-writes to the same unseen symbol land in a single series.
func (r *SymbolRegistry) getOrCreate(symbol string) *WindowedSeries {
	r.mu.RLock()
	s, ok := r.series[symbol]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.series[symbol]; ok {
		return s
	}

	s = NewWindowedSeries(symbol)
	r.series[symbol] = s
	r.Logger.Debug("Registered new symbol %q (%d total)", symbol, len(r.series))
	return s
}

// -----------------------------------------------------------------------------

func (r *SymbolRegistry) validateSymbol(symbol string) error {
	if symbol == "" {
		return helpers.NewInvalidSymbol(symbol, "symbol cannot be empty")
	}
	if len(symbol) > r.Config.MaxSymbolLength {
		return helpers.NewInvalidSymbol(symbol, "symbol exceeds maximum length")
	}
	return nil
}

// -----------------------------------------------------------------------------

// Symbols returns all registered symbols in unspecified order.
func (r *SymbolRegistry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	symbols := make([]string, 0, len(r.series))
	for sym := range r.series {
		symbols = append(symbols, sym)
	}
	return symbols
}

// -----------------------------------------------------------------------------

// TotalObservations returns the number of observations across all series.
func (r *SymbolRegistry) TotalObservations() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, s := range r.series {
		total += int64(s.Len())
	}
	return total
}

// -----------------------------------------------------------------------------

// Status summarizes the registry for health reporting.
func (r *SymbolRegistry) Status() models.MEngineStatus {
	r.mu.RLock()
	symbols := len(r.series)
	r.mu.RUnlock()

	return models.MEngineStatus{
		Symbols:           symbols,
		TotalObservations: r.TotalObservations(),
		UptimeSeconds:     time.Since(r.startedAt).Seconds(),
	}
}

// -----------------------------------------------------------------------------

// ValidateBatch checks that every value in the batch is a finite number.
func ValidateBatch(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) {
			return helpers.NewInvalidValue(i, "NaN is not a valid observation")
		}
		if math.IsInf(v, 0) {
			return helpers.NewInvalidValue(i, "infinity is not a valid observation")
		}
	}
	return nil
}
