package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tehnczon/projectecho/internal/app"
	"github.com/tehnczon/projectecho/internal/config"
)

// RunWorker starts the outbox polling loop that folds newly created survey
// records into the analytics summary. Blocks until receiving SIGINT/SIGTERM.
// Records already aggregated are skipped, so restarting the worker after a
// crash never double counts.
func RunWorker(ctx context.Context, version string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting aggregation worker", slog.String("version", version))

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox use case: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := outboxUseCase.Start(ctx); err != nil {
		return fmt.Errorf("worker error: %w", err)
	}

	logger.Info("aggregation worker stopped")
	return nil
}
