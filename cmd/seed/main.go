package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strconv"

	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/service"
	"catalog/internal/store"
)

// Usage: seed [-database-url URL] [-seed N] [rows]
func main() {
	var databaseURL string
	var seed uint64

	flag.StringVar(&databaseURL, "database-url", "", "Database URL (defaults to config.yaml / DATABASE_URL)")
	flag.Uint64Var(&seed, "seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	rows := service.DefaultSeedRows
	if arg := flag.Arg(0); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			slog.Error("Row count must be a positive integer", "value", arg)
			os.Exit(1)
		}
		rows = n
	}

	if databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		databaseURL = cfg.DatabaseURL
	}

	ctx := context.Background()
	pool, err := database.New(ctx, databaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if _, err := service.SeedProjects(ctx, store.NewPostgresProjectStore(pool), rows, seed); err != nil {
		slog.Error("Error seeding database", "error", err)
		pool.Close()
		os.Exit(1)
	}
}
