package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/inventory-ledger/internal/config"
	api "github.com/rogerio-castellano/inventory-ledger/internal/http"
	rl "github.com/rogerio-castellano/inventory-ledger/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-ledger/internal/inventory"
	"github.com/rogerio-castellano/inventory-ledger/internal/jobs"
	"github.com/rogerio-castellano/inventory-ledger/internal/logging"
	"github.com/rogerio-castellano/inventory-ledger/internal/persistence"
	"github.com/rogerio-castellano/inventory-ledger/internal/repo"
	"github.com/rogerio-castellano/inventory-ledger/internal/storage"
)

// @title Inventory Ledger API
// @version 1.0
// @description REST API for managing products, stock movements and inventory reports.
// @host localhost:8080
// @BasePath /
func main() {
	configPath := flag.String("config", "", "path to a config file (default ./config.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("inventory service stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, storage.Options{
		Driver:      cfg.Storage.Driver,
		BoltPath:    cfg.Storage.BoltPath,
		RedisAddr:   cfg.Storage.RedisAddr,
		RedisPrefix: cfg.Storage.RedisPrefix,
		PostgresURL: cfg.Storage.PostgresURL,
	})
	if err != nil {
		return fmt.Errorf("could not open storage: %w", err)
	}
	defer store.Close()
	logger.Info("storage ready", zap.String("driver", cfg.Storage.Driver))

	ids, err := repo.NewSnowflakeIDs(cfg.Inventory.NodeID)
	if err != nil {
		return err
	}

	inv, err := inventory.New(ctx, persistence.NewGateway(store, logger), inventory.Options{
		IDs:    ids,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	sched := jobs.NewScheduler(logger)
	if err := sched.ScheduleBackup(cfg.Backup.Schedule, jobs.NewBackupJob(inv, cfg.Backup.Dir)); err != nil {
		return err
	}
	sched.Start()

	limiter := rl.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(inv, logger, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
