package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/buildright/backend/internal/config"
	"github.com/buildright/backend/internal/logging"
	"github.com/buildright/backend/internal/repository"
	"github.com/golang-migrate/migrate/v4"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  up          apply all pending migrations (default)
  down        roll back the most recent migration
  version     print the current schema version
  force N     mark version N as applied without running it

Targets DATABASE_URL (PostgreSQL). SQLite databases are migrated when the
server opens them.`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	m, err := repository.NewPostgresMigrator(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("migrate init failed", "error", err)
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := repository.Up(m); err != nil {
			logging.Fatal("migrate up failed", "error", err)
		}
		slog.Info("migrations applied")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logging.Fatal("migrate down failed", "error", err)
		}
		slog.Info("rolled back one migration")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			slog.Info("no migrations applied")
			return
		}
		if err != nil {
			logging.Fatal("read version failed", "error", err)
		}
		slog.Info("schema version", "version", version, "dirty", dirty)
	case "force":
		if len(os.Args) < 3 {
			usage()
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			usage()
		}
		if err := m.Force(version); err != nil {
			logging.Fatal("force failed", "version", version, "error", err)
		}
		slog.Info("forced schema version", "version", version)
	default:
		usage()
	}
}
