package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"catalog/internal/api"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/store"
	"catalog/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(cfg.DatabaseURL, "migrations"); err != nil {
		slog.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	projectStore := store.NewPostgresProjectStore(pool)
	server := api.NewServer(cfg, pool, projectStore)

	slog.Info("Project catalog ("+version.Version+") is listening", "port", cfg.Port, "allowed_origin", cfg.AllowedOrigin)
	if err := server.Serve(ctx); err != nil {
		slog.Error("Failed to run server", "error", err)
		os.Exit(1)
	}
}
