// Command migrate creates or updates the database schema and exits.
package main

import (
	"log/slog"
	"os"

	"task_backend/config"
	"task_backend/internal/platform/db"
	"task_backend/internal/platform/logging"
)

func main() {
	cfg, err := config.Load(".", "config", "../config")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		slog.Error("failed to build logger", "error", err)
		os.Exit(1)
	}

	// Open 側で二重に実行しないよう無効化
	dbCfg := cfg.DB
	dbCfg.Migrate = false

	gdb, err := db.Open(dbCfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migration completed", "driver", dbCfg.Driver)
}
