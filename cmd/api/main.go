// Package main is the entry point for the Liturgical Calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zapponejosh/liturgical-calendar/internal/api"
	"github.com/zapponejosh/liturgical-calendar/internal/config"
	"github.com/zapponejosh/liturgical-calendar/internal/data"
	"github.com/zapponejosh/liturgical-calendar/internal/database"
	"github.com/zapponejosh/liturgical-calendar/internal/engine"
	"github.com/zapponejosh/liturgical-calendar/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting liturgical calendar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("log_level", cfg.LogLevel),
		slog.Bool("cache", cfg.CacheEnabled),
	)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("liturgical calendar API stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ref, err := data.Default()
	if err != nil {
		return fmt.Errorf("load reference data: %w", err)
	}
	eng := engine.New(ref, logger.Component(log, "engine"))

	var cache *database.DB
	if cfg.CacheEnabled {
		cache, err = openCache(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer cache.Close()

		scheduler, err := schedulePruning(cache, cfg.CachePruneSchedule, logger.Component(log, "cache"))
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	handlers := api.NewHandlers(eng, cache, cfg, logger.Component(log, "api"))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.SetupRoutes(handlers, log),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("liturgical calendar API ready", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openCache opens the calendar cache and applies pending migrations.
func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (*database.DB, error) {
	db, err := database.Open(database.DefaultConfig(cfg.CachePath), logger.Component(log, "database"))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	applied, err := db.Migrate(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	log.Info("cache ready", slog.String("path", cfg.CachePath), slog.Int("migrations_applied", applied))
	return db, nil
}

// schedulePruning drops cache entries from past epochs on spec.
func schedulePruning(db *database.DB, spec string, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		removed, err := db.Prune(ctx, database.Epoch(time.Now()))
		if err != nil {
			log.Error("cache prune failed", slog.Any("error", err))
			return
		}
		log.Info("cache pruned", slog.Int64("removed", removed))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache pruning %q: %w", spec, err)
	}
	return c, nil
}
