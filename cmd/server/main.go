package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/lists/internal/config"
	"github.com/JonMunkholm/lists/internal/core"
	"github.com/JonMunkholm/lists/internal/logging"
	"github.com/JonMunkholm/lists/internal/store"
	"github.com/JonMunkholm/lists/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage_driver", cfg.Storage.Driver,
		"save_on_write", cfg.Storage.SaveOnWrite,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()
	st, closeStore, err := store.Open(ctx, store.Options{
		Driver:        cfg.Storage.Driver,
		DataPath:      cfg.Storage.DataPath,
		TemplatesPath: cfg.Storage.TemplatesPath,
		Compress:      cfg.Storage.Compress,
		DatabaseURL:   cfg.Storage.DatabaseURL,
		Pool: store.PoolOptions{
			MaxConns:        cfg.Storage.MaxConns,
			MinConns:        cfg.Storage.MinConns,
			MaxConnLifetime: cfg.Storage.MaxConnLifetime,
		},
	})
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	core.DefaultPageSize = cfg.Lists.DefaultPageSize
	service, err := core.NewService(ctx, st, core.ServiceOptions{
		DefaultPageSize: cfg.Lists.DefaultPageSize,
		SaveOnWrite:     cfg.Storage.SaveOnWrite,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(service, cfg)

	// Background snapshots are only needed when writes are not saved at once.
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	snapshotDone := make(chan struct{})
	go func() {
		defer close(snapshotDone)
		if !cfg.Storage.SaveOnWrite {
			service.StartSnapshotScheduler(jobCtx, cfg.Storage.SnapshotInterval)
		}
	}()

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); errors.Is(err, http.ErrServerClosed) {
		// Start returns as soon as Shutdown begins; in-flight requests may
		// still be writing.
		<-shutdownDone
	} else if err != nil {
		slog.Error("server error", "error", err)
	}

	// The scheduler flushes on cancel; without it, flush here.
	cancelJobs()
	<-snapshotDone
	if service.Dirty() {
		saveCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		if err := service.Save(saveCtx); err != nil {
			slog.Error("final save failed", "error", err)
		}
		cancel()
	}
	slog.Info("server stopped")
}
