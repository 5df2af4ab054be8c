package main

import (
	"context"
	"log/slog"
	"os"

	"orgcatalog.app/catalog/common/logger"
	"orgcatalog.app/catalog/core/config"
	"orgcatalog.app/catalog/core/db"
)

// migrate applies the embedded schema and exits. The server also migrates on
// start; this binary exists for deploys that run migrations as a separate step.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeMigrate)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg)

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		slog.ErrorContext(ctx, "migration failed", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "migrations applied")
}
