package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clemux/holdem-suite/internal/application"
	"github.com/clemux/holdem-suite/internal/applog"
	"github.com/clemux/holdem-suite/internal/config"
	"github.com/clemux/holdem-suite/internal/persistence"
	"github.com/clemux/holdem-suite/internal/watcher"
)

var (
	version   = "dev"
	commit    = "local"
	buildDate = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	applog.Init(cfg.Debug)
	slog.Info("starting",
		"version", version,
		"commit", commit,
		"buildDate", buildDate,
		"debug", cfg.Debug,
		"watchDir", cfg.WatchDir,
		"dbPath", cfg.DBPath,
	)

	repo, err := persistence.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		slog.Warn("sqlite init failed, falling back to in-memory store", "error", err)
		repo = nil
	}

	var store persistence.Repository = persistence.NewMemoryRepository()
	if repo != nil {
		store = repo
	}
	defer store.Close()

	svc := application.NewService(store, application.NewNotifier())

	notifications, unsubscribe := svc.Notifier().Subscribe()
	defer unsubscribe()
	go func() {
		for msg := range notifications {
			slog.Info("notification", "kind", msg.Kind, "message", msg.Text)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dw, err := watcher.New(cfg.WatchDir, svc.WatcherConfig(ctx))
	if err != nil {
		slog.Error("create watcher", "error", err, "dir", cfg.WatchDir)
		os.Exit(1)
	}
	if err := dw.Start(); err != nil {
		slog.Error("start watcher", "error", err, "dir", cfg.WatchDir)
		os.Exit(1)
	}
	defer dw.Stop()

	slog.Info("watching", "dir", cfg.WatchDir)
	<-ctx.Done()
	slog.Info("shutting down")
}
