package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"notedesk/internal/notes/config"
	"notedesk/internal/notes/db"
	"notedesk/pkg/logger"
)

// ErrMigrate - ошибка применения схемы.
const ErrMigrate = "failed to migrate database"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run(migrateSchema)
	},
}

func migrateSchema(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := db.Migrate(ctx, &cfg.Postgres); err != nil {
		log.Error(ctx, ErrMigrate, zap.Error(err))
		return err
	}
	log.Info(ctx, "database schema is up to date", zap.String("database", cfg.Postgres.Database))
	return nil
}
