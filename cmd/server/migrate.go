package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/fashion_api/internal/config"
	"github.com/Skotchmaster/fashion_api/internal/db"
	"github.com/Skotchmaster/fashion_api/internal/logging"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and fashion tables, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName, "cmd", "migrate")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			gdb, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				logger.Error("db_open_failed", "error", err)
				return err
			}
			defer func() { _ = db.Close(gdb) }()

			if err := db.Migrate(ctx, gdb); err != nil {
				logger.Error("migrate_failed", "error", err)
				return err
			}
			logger.Info("migrate_complete", "driver", cfg.DBDriver)
			return nil
		},
	}
}
