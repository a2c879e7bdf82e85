package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smarthire/smarthire-backend/internal/config"
	"github.com/smarthire/smarthire-backend/internal/db"
	"github.com/smarthire/smarthire-backend/internal/worker"
)

var workerOnce bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the housekeeping worker",
	Long:  `Periodically recompute candidate profile completeness and refresh stale match scores for active jobs.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().BoolVar(&workerOnce, "once", false, "Run a single sweep and exit")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	w := worker.New(database, logger, worker.Options{
		Interval:    cfg.WorkerInterval,
		BatchSize:   cfg.WorkerBatchSize,
		Concurrency: cfg.WorkerConcurrency,
	})

	if workerOnce {
		if err := w.Sweep(ctx); err != nil {
			return err
		}
		return w.RefreshScores(ctx)
	}

	logger.Info("worker starting", zap.Duration("interval", cfg.WorkerInterval))
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("worker stopped")
	return nil
}
