package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"catalog/internal/config"
	"catalog/internal/database"
)

// Usage: go run ./scripts -direction up|down|force|drop [-version N]
func main() {
	databaseURL := flag.String("database-url", "", "Database URL (defaults to config.yaml / DATABASE_URL)")
	migrationsPath := flag.String("path", "migrations", "Path to migrations folder")
	direction := flag.String("direction", "up", "Migration direction (up/down/force/drop)")
	version := flag.Int("version", -1, "Migration version (required for force)")
	flag.Parse()

	if *databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			slog.Error("Failed to load config", "error", err)
			os.Exit(1)
		}
		*databaseURL = cfg.DatabaseURL
	}

	if err := run(*direction, *databaseURL, *migrationsPath, *version); err != nil {
		slog.Error("Migration failed", "direction", *direction, "error", err)
		os.Exit(1)
	}
	slog.Info("Migration finished", "direction", *direction)
}

func run(direction, databaseURL, migrationsPath string, version int) error {
	// up shares the server's startup path
	if direction == "up" {
		return database.Migrate(databaseURL, migrationsPath)
	}

	var step func(m *migrate.Migrate) error
	switch direction {
	case "down":
		step = func(m *migrate.Migrate) error {
			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return err
			}
			return nil
		}
	case "force":
		if version < 0 {
			return errors.New("-version is required for force")
		}
		step = func(m *migrate.Migrate) error { return m.Force(version) }
	case "drop":
		step = func(m *migrate.Migrate) error { return m.Drop() }
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer m.Close()

	return step(m)
}
