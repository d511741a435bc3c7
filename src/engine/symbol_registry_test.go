package engine

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-stats/src/helpers"
	"trade-stats/src/logger"
	"trade-stats/src/models"
)

func newTestRegistry() *SymbolRegistry {
	cfg := models.MEngineConfig{
		MaxSymbolLength: 64,
		MaxBatchSize:    10000,
	}
	return NewSymbolRegistry(cfg, logger.NewLogger(nil, "test"))
}

func TestSymbolRegistry_AddBatchAndStats(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.AddBatch("BTCUSD", []float64{3, 3, 3}))

	res, err := r.Stats("BTCUSD", 10)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 3.0, res.Min)
	assert.Equal(t, 3.0, res.Max)
	assert.Equal(t, 3.0, res.Mean)
	assert.Equal(t, 0.0, res.StdDev)
	assert.Equal(t, 3.0, res.Median)
}

func TestSymbolRegistry_UnknownSymbol(t *testing.T) {
	r := newTestRegistry()

	_, err := r.Stats("NOPE", 1)
	require.Error(t, err)
	assert.Equal(t, "UnknownSymbol", helpers.ErrorName(err))
}

func TestSymbolRegistry_InvalidSymbol(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name   string
		symbol string
	}{
		{
			name:   "empty",
			symbol: "",
		},
		{
			name:   "too long",
			symbol: strings.Repeat("A", 65),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.AddBatch(tc.symbol, []float64{1})
			require.Error(t, err)
			assert.Equal(t, "InvalidSymbol", helpers.ErrorName(err))
		})
	}
}

func TestSymbolRegistry_InvalidBatches(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		name   string
		values []float64
	}{
		{
			name:   "empty batch",
			values: nil,
		},
		{
			name:   "oversized batch",
			values: make([]float64, 10001),
		},
		{
			name:   "non-finite value",
			values: []float64{1, math.NaN()},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.AddBatch("ETHUSD", tc.values)
			require.Error(t, err)
			assert.Equal(t, "InvalidValue", helpers.ErrorName(err))
		})
	}

	// A rejected first batch must not register the symbol
	_, err := r.Stats("ETHUSD", 1)
	assert.Equal(t, "UnknownSymbol", helpers.ErrorName(err))
	assert.Empty(t, r.Symbols())
}

func TestSymbolRegistry_SymbolsAreCaseSensitive(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.AddBatch("aapl", []float64{1}))

	_, err := r.Stats("AAPL", 1)
	assert.Equal(t, "UnknownSymbol", helpers.ErrorName(err))
}

func TestSymbolRegistry_BatchOrderAcrossCalls(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.AddBatch("AAPL", []float64{1, 2}))
	require.NoError(t, r.AddBatch("AAPL", []float64{3, 4, 5}))

	res, err := r.Stats("AAPL", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Count)
	assert.Equal(t, 3.0, res.Min)
	assert.Equal(t, 5.0, res.Max)
	assert.Equal(t, 5.0, res.Last)
}

// Two concurrent first-writes to the same unseen symbol must produce exactly
// one series containing every value from both batches.
func TestSymbolRegistry_ConcurrentFirstWrites(t *testing.T) {
	const (
		writers   = 32
		batchSize = 25
	)

	r := newTestRegistry()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			batch := make([]float64, batchSize)
			for i := range batch {
				batch[i] = float64(id)
			}
			assert.NoError(t, r.AddBatch("NEWSYM", batch))
		}(w)
	}
	wg.Wait()

	assert.Equal(t, []string{"NEWSYM"}, r.Symbols())
	assert.Equal(t, int64(writers*batchSize), r.TotalObservations())

	res, err := r.Stats("NEWSYM", writers*batchSize)
	require.NoError(t, err)
	assert.Equal(t, writers*batchSize, res.Count)
}

func TestSymbolRegistry_ConcurrentMixedSymbols(t *testing.T) {
	const perSymbol = 100

	r := newTestRegistry()
	symbols := []string{"AAA", "BBB", "CCC", "DDD"}

	var wg sync.WaitGroup
	for _, sym := range symbols {
		for i := 0; i < perSymbol; i++ {
			wg.Add(1)
			go func(sym string, v int) {
				defer wg.Done()
				assert.NoError(t, r.AddBatch(sym, []float64{float64(v)}))
			}(sym, i)
		}
	}

	// Readers race the writers; they may see partial history but never an error
	for _, sym := range symbols {
		wg.Add(1)
		go func(sym string) {
			defer wg.Done()
			for i := 0; i < perSymbol; i++ {
				if _, err := r.Stats(sym, 10); err != nil {
					assert.Equal(t, "UnknownSymbol", helpers.ErrorName(err))
				}
			}
		}(sym)
	}
	wg.Wait()

	assert.Len(t, r.Symbols(), len(symbols))
	assert.Equal(t, int64(len(symbols)*perSymbol), r.TotalObservations())

	for _, sym := range symbols {
		res, err := r.Stats(sym, perSymbol*2)
		require.NoError(t, err, fmt.Sprintf("stats for %s", sym))
		assert.Equal(t, perSymbol, res.Count)
	}
}

func TestSymbolRegistry_Status(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.AddBatch("AAPL", []float64{1, 2, 3}))
	require.NoError(t, r.AddBatch("MSFT", []float64{4}))

	status := r.Status()
	assert.Equal(t, 2, status.Symbols)
	assert.Equal(t, int64(4), status.TotalObservations)
	assert.GreaterOrEqual(t, status.UptimeSeconds, 0.0)
}
