package utils

import (
	"runtime"
	"sync"
	"time"

	"trade-stats/src/interfaces"
	"trade-stats/src/logger"
)

// -----------------------------------------------------------------------------
// GrowthMonitor periodically reports history growth against a soft memory
// budget. Histories are never trimmed, so the monitor only warns; it takes
// no corrective action.
// -----------------------------------------------------------------------------

type GrowthMonitor struct {
	Engine      interfaces.IStatsEngine
	MaxMemoryMB int
	Interval    time.Duration
	Logger      *logger.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// -----------------------------------------------------------------------------

func NewGrowthMonitor(engine interfaces.IStatsEngine, maxMemoryMB int, interval time.Duration, l *logger.Logger) *GrowthMonitor {
	return &GrowthMonitor{
		Engine:      engine,
		MaxMemoryMB: maxMemoryMB,
		Interval:    interval,
		Logger:      l,
		done:        make(chan struct{}),
	}
}

// -----------------------------------------------------------------------------

// Start launches the monitor goroutine.
func (gm *GrowthMonitor) Start() {
	gm.wg.Add(1)
	go gm.run()
}

// -----------------------------------------------------------------------------

// Stop terminates the monitor goroutine and waits for it.
func (gm *GrowthMonitor) Stop() {
	close(gm.done)
	gm.wg.Wait()
}

// -----------------------------------------------------------------------------

func (gm *GrowthMonitor) run() {
	defer gm.wg.Done()

	ticker := time.NewTicker(gm.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			gm.report()
		case <-gm.done:
			return
		}
	}
}

// -----------------------------------------------------------------------------

func (gm *GrowthMonitor) report() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	status := gm.Engine.Status()
	heapMB := float64(mem.HeapInuse) / (1024 * 1024)

	gm.Logger.Info("Engine holds %d observations across %d symbols (heap in use: %.1f MB)",
		status.TotalObservations, status.Symbols, heapMB)

	if gm.MaxMemoryMB > 0 && heapMB > float64(gm.MaxMemoryMB) {
		gm.Logger.Warning("Heap usage %.1f MB exceeds soft budget of %d MB; histories grow without bound",
			heapMB, gm.MaxMemoryMB)
	}
}
