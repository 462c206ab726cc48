package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	app_service "crypto-fund-tracer/internal/application/service"
	"crypto-fund-tracer/internal/infrastructure/config"
	"crypto-fund-tracer/internal/infrastructure/logger"
	"crypto-fund-tracer/internal/infrastructure/server"
	"crypto-fund-tracer/internal/infrastructure/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create FX application
	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.Ledger),
		fx.Provide(func() *zap.Logger { return log.Logger }),

		// Infrastructure providers
		fx.Provide(
			store.NewCSVTransferRepository,
			store.NewCSVMappingRepository,
			server.NewQueryServer,
		),

		// Application providers
		fx.Provide(
			app_service.NewTraceApplicationService,
			app_service.NewEntityResolutionApplicationService,
		),

		// Lifecycle hooks
		fx.Invoke(startQueryServer),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	// Stop the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// startQueryServer starts the HTTP query server
func startQueryServer(
	lifecycle fx.Lifecycle,
	queryServer *server.QueryServer,
	log *zap.Logger,
	cfg *config.Config,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting query server",
				zap.Int("port", cfg.App.HTTPPort),
				zap.String("transfers_file", cfg.Ledger.TransfersFile),
				zap.String("mappings_file", cfg.Ledger.MappingsFile))
			queryServer.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping query server...")
			return queryServer.Stop(ctx)
		},
	})
}
