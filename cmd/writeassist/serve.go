package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/writeassist-backend/internal/app"
	"github.com/heartmarshall/writeassist-backend/internal/config"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath(cmd))
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log, os.Stderr)
			return app.Run(cmd.Context(), cfg, logger)
		},
	}
}
