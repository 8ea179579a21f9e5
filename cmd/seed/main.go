package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/org-directory/internal/app"
	"github.com/riskibarqy/org-directory/internal/config"
	"github.com/riskibarqy/org-directory/internal/observability"
	"github.com/riskibarqy/org-directory/internal/platform/logging"
	"github.com/riskibarqy/org-directory/internal/usecase"
)

func main() {
	fixturePath := flag.String("fixture", "./db/seed/directory.json", "path to the directory fixture")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger, *fixturePath); err != nil {
		logger.Error("seed failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, fixturePath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	file, err := os.Open(fixturePath)
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	fixture, err := usecase.DecodeSeedFixture(file)
	if err != nil {
		return err
	}

	directory, err := app.NewDirectory(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build directory: %w", err)
	}
	defer directory.Close()

	seeder := usecase.NewSeedService(directory.Roles, directory.Teams, logger, cfg.SeedWorkers)
	result, err := seeder.Run(ctx, fixture)
	if err != nil {
		return err
	}

	logger.Info("directory seeded",
		"fixture", fixturePath,
		"db_driver", cfg.DBDriver,
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"edges", result.Edges,
		"employees", result.Employees,
	)
	return nil
}
