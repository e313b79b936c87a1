// labor-sync-service runs the labor-cost reconciler on its interval until
// SIGINT/SIGTERM.
//
// Usage (from backend directory):
//   KV_PROVIDER=memory go run ./cmd/labor-sync-service
//   KV_PROVIDER=mysql DB_USER=... DB_PASSWORD=... go run ./cmd/labor-sync-service
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/buildledger/jobs_backend/config"
	"github.com/buildledger/jobs_backend/storage"
	"github.com/buildledger/jobs_backend/store"
	"github.com/buildledger/jobs_backend/workflow"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := config.GetLogger()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	connectBackend()
	st, err := storage.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize storage backend: %v\n", err)
		os.Exit(1)
	}

	jobs, err := store.NewJobStore(sigCtx, st, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load job store: %v\n", err)
		os.Exit(1)
	}
	labor, err := store.NewLaborStore(sigCtx, st, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load labor store: %v\n", err)
		os.Exit(1)
	}

	syncer := workflow.NewLaborSyncer(jobs, labor, logger)
	logger.WithFields(logrus.Fields{
		"provider": config.KVProvider(),
		"interval": config.LaborSyncInterval().String(),
	}).Info("labor sync service started")

	syncer.Run(sigCtx)

	jobs.FlushPendingSaves()
	logger.Info("labor sync service stopped")
}

func connectBackend() {
	switch config.KVProvider() {
	case "mysql":
		config.ConnectDatabaseWithRetry()
	case "redis":
		config.ConnectRedisWithRetry()
	}
}
