package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dimitrije/carshare/internal/config"
	"github.com/dimitrije/carshare/internal/database"
	"github.com/dimitrije/carshare/internal/localstore"
	"github.com/dimitrije/carshare/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open local storage", "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	c, err := newCLI(ctx, cfg, storage, logger, os.Stdout)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}

	if err := c.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeStorage()
		os.Exit(1)
	}
}

// openStorage uses Postgres when DATABASE_URL is set and a TOML file otherwise.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (localstore.Storage, func(), error) {
	if cfg.DatabaseURL == "" {
		file, err := localstore.OpenFile(cfg.StoragePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using file storage", "path", file.Path())
		return file, func() {}, nil
	}

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.Debug("using database storage", "namespace", cfg.StorageNamespace)
	return database.NewLocalStorage(db, cfg.StorageNamespace), db.Close, nil
}
