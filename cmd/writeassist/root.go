package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/writeassist-backend/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "writeassist",
		Short: "Writing assistant backed by Google Gemini",
		Long: `writeassist serves the writing assistant HTTP API and runs its
operator tasks: database migrations, token issuing and headless assist runs
over a text file.

Configuration is read from --config, CONFIG_PATH or ./config.yaml, with
environment variables taking precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "path to the YAML config file")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newTokenCmd(),
		newAssistCmd(),
		newVersionCmd(),
		newEnvCmd(),
	)
	return root
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	return path
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the server reads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.Usage())
		},
	}
}
