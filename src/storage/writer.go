package storage

import (
	"sync"
	"sync/atomic"
	"time"

	"trade-stats/src/helpers"
	"trade-stats/src/interfaces"
	"trade-stats/src/logger"
	"trade-stats/src/models"
)

const cleanupInterval = 6 * time.Hour

// -----------------------------------------------------------------------------
// JournalWriter decouples the API path from journal I/O. Accepted batches are
// queued and written by a single background goroutine; when the queue is full
// the batch is dropped with a warning. Nothing in the engine ever reads the
// journal back, so a dropped write costs durability only.
// -----------------------------------------------------------------------------

type JournalWriter struct {
	Journal interfaces.IJournal
	Logger  *logger.Logger

	queue    chan []models.MObservation
	batchSeq atomic.Int64
	dropped  atomic.Int64
	wg       sync.WaitGroup
}

// -----------------------------------------------------------------------------

// NewJournalWriter creates a writer over an initialized journal.
func NewJournalWriter(journal interfaces.IJournal, queueSize int, log *logger.Logger) *JournalWriter {
	return &JournalWriter{
		Journal: journal,
		Logger:  log,
		queue:   make(chan []models.MObservation, queueSize),
	}
}

// -----------------------------------------------------------------------------

// Start launches the background writer goroutine.
func (w *JournalWriter) Start() {
	w.wg.Add(1)
	go w.run()
}

// -----------------------------------------------------------------------------

// Enqueue records an accepted batch for journaling. Never blocks.
func (w *JournalWriter) Enqueue(symbol string, values []float64) {
	seq := w.batchSeq.Add(1)
	now := time.Now().Unix()

	obs := make([]models.MObservation, len(values))
	for i, v := range values {
		obs[i] = models.MObservation{
			Symbol:     symbol,
			Value:      v,
			BatchSeq:   seq,
			Position:   i,
			ReceivedAt: now,
		}
	}

	select {
	case w.queue <- obs:
	default:
		if w.dropped.Add(1)%100 == 1 {
			w.Logger.Warning("Journal queue full, dropping batch for %q (%d dropped so far)",
				symbol, w.dropped.Load())
		}
	}
}

// -----------------------------------------------------------------------------

// Stop drains the queue and waits for the writer goroutine to exit.
func (w *JournalWriter) Stop() {
	close(w.queue)
	w.wg.Wait()
}

// -----------------------------------------------------------------------------

func (w *JournalWriter) run() {
	defer w.wg.Done()

	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	for {
		select {
		case obs, ok := <-w.queue:
			if !ok {
				return
			}
			w.save(obs)

		case <-cleanup.C:
			if err := w.Journal.CleanupOldData(); err != nil {
				w.Logger.Error("Journal cleanup failed: %v", err)
			}
		}
	}
}

// -----------------------------------------------------------------------------

func (w *JournalWriter) save(obs []models.MObservation) {
	_, err := helpers.RetryWithBackoff("journal write", 3, 250*time.Millisecond,
		func() (interface{}, error) {
			return nil, w.Journal.SaveObservationsBulk(obs)
		})
	if err != nil {
		w.Logger.Error("Journal write failed after retries, dropping %d rows: %v", len(obs), err)
	}
}
