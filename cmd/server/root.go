package main

import (
	"fmt"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "exercise-tracker",
	Short: "Exercise tracker API",
	Long: `Exercise tracker records users and their exercise sessions and serves
a filtered log per user.

The store is chosen from DATABASE_URL (or MONGO_URI):

  postgres://...   PostgreSQL, schema managed by 'migrate'
  mongodb://...    MongoDB
  memory://        in-process, lost on exit

Running without a subcommand is the same as 'serve'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log, err = logger.New(cfg.App.Environment)
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if log != nil {
			_ = log.Sync()
		}
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}
