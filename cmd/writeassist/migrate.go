package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/writeassist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/writeassist-backend/internal/app"
	"github.com/heartmarshall/writeassist-backend/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list database migrations",
		Long:      "Runs the embedded goose migrations against database.dsn. down rolls back one migration.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown, postgres.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			if cfg.Storage.Backend != config.StoragePostgres {
				return fmt.Errorf("migrate: storage backend is %q, migrations need %q", cfg.Storage.Backend, config.StoragePostgres)
			}

			logger := app.NewLogger(cfg.Log, os.Stderr)
			return postgres.Migrate(cmd.Context(), cfg.Database.DSN, command, logger)
		},
	}
}
