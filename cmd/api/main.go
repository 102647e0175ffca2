// Command api serves the reconciliation HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ledgerlens/reconcile/internal/api"
	"github.com/ledgerlens/reconcile/internal/application/service"
	"github.com/ledgerlens/reconcile/internal/infrastructure/config"
	"github.com/ledgerlens/reconcile/internal/infrastructure/logging"
	"github.com/ledgerlens/reconcile/internal/infrastructure/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.LoadOrEnv()
	logger := logging.NewWithSystem(cfg.Observability.Logging, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Storage.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := service.NewReconService(cfg, store, logger)
	server := api.NewServer(cfg.Server, store, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
