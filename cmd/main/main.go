package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trade-stats/src/config"
	"trade-stats/src/engine"
	"trade-stats/src/grpc_control"
	"trade-stats/src/interfaces"
	"trade-stats/src/logger"
	"trade-stats/src/server"
	"trade-stats/src/storage"
	"trade-stats/src/utils"

	"golang.org/x/sync/errgroup"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config, config.Name)

	// 2. Setup Journal (optional, write-behind)
	var journal interfaces.IJournal

	switch config.Storage.DBType {
	case "postgres":
		journal, err = storage.NewPostgresJournal(config.MConfig, appLogger)
	case "sqlite":
		journal, err = storage.NewSQLiteJournal(config.MConfig, appLogger)
	default:
		appLogger.Info("Observation journal disabled (db_type=%q)", config.Storage.DBType)
	}
	if err != nil {
		appLogger.Critical("Failed to init journal: %v", err)
	}

	var journalWriter *storage.JournalWriter
	if journal != nil {
		if err := journal.Initialize(); err != nil {
			// The journal is best-effort; the engine serves without it.
			appLogger.Error("Journal init failed, continuing without journal: %v", err)
			journal = nil
		} else {
			journalWriter = storage.NewJournalWriter(journal, config.Storage.QueueSize, appLogger)
			journalWriter.Start()
		}
	}

	// 3. Setup Engine and Supporting Components
	registry := engine.NewSymbolRegistry(config.Engine, appLogger)
	sessions := utils.NewSessionTracker(appLogger)

	srv := server.NewAPIServer(config.MConfig, appLogger, registry, journalWriter, sessions)
	control := grpc_control.NewControlServer(config.MConfig, appLogger, registry)
	control.SetJournalServing(journalWriter != nil)

	// 4. Growth Monitor
	monitor := utils.NewGrowthMonitor(registry, config.Engine.MaxMemoryMB,
		time.Duration(config.Engine.MonitorIntervalSeconds)*time.Second, appLogger)
	monitor.Start()

	appLogger.Info("Initialization complete.")

	// 5. Run Servers
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(srv.Start)
	if config.GrpcPort > 0 {
		g.Go(control.Start)
	}

	// 6. Shutdown Handling
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		select {
		case <-quit:
			appLogger.Info("Shutting down...")
		case <-ctx.Done():
			// One of the servers failed; tear the rest down.
		}

		if config.GrpcPort > 0 {
			control.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server failed: %v", err)
	}

	// 7. Drain and Close
	monitor.Stop()
	if journalWriter != nil {
		journalWriter.Stop()
		journal.Close()
	}

	appLogger.Info("Shutdown complete.")
}
