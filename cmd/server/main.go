package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bidoro/waitlist-api/config"
	"github.com/bidoro/waitlist-api/domain"
	"github.com/bidoro/waitlist-api/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var autoMigrate bool
	flag.BoolVar(&autoMigrate, "auto-migrate", false, "run gorm AutoMigrate for the waitlist model (dev/test only)")
	flag.BoolVar(&autoMigrate, "m", false, "shorthand for --auto-migrate")
	flag.Parse()

	logger := log.NewLoggerWithJSONOutput()
	logger.Info("Waitlist API starting")

	appConfig, err := config.LoadApplicationConfiguration(logger, autoMigrate)
	if err != nil {
		logger.Error("Failed to load application configuration", "error", err.Error())
		os.Exit(1)
	}

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := appConfig.RouterService.RunHTTPServer(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("Server error", "error", err)
		appConfig.Cleanup()
		os.Exit(1)
	case <-ctx.Done():
		logger.Info("Shutdown signal received, shutting down gracefully...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		// Waits for in-flight submissions, including their confirmation send.
		if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		} else {
			logger.Info("HTTP server shut down gracefully")
		}
		appConfig.Cleanup()

		logger.Info("Graceful shutdown completed")
	}
}
