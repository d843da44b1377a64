package main

import (
	"context"
	"database/sql"
	"fmt"
	"text/tabwriter"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/database/migration"
	dbpostgres "exercise-tracker/internal/database/postgres"

	"github.com/spf13/cobra"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Long: `Apply V<n>__<name>.sql files in version order.

Files are read from MIGRATIONS_DIR when that directory exists, otherwise
from the schema built into the binary. Only meaningful for a postgres
DATABASE_URL; MongoDB and the memory store need no schema.

USAGE:

  exercise-tracker migrate --dry-run   # List what would be applied
  exercise-tracker migrate             # Apply pending migrations
  exercise-tracker migrate status      # Show every version and its state`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(cmd, func(ctx context.Context, r migration.Runner, db *sql.DB) error {
			r.DryRun = migrateDryRun
			rep, err := r.Run(ctx, db)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "applied"
			if rep.DryRun {
				verb = "pending"
			}
			for _, m := range rep.Applied {
				fmt.Fprintf(out, "%s  V%d  %s\n", verb, m.Version, m.Name)
			}
			if len(rep.Applied) == 0 {
				fmt.Fprintf(out, "schema up to date at version %d\n", rep.Current)
			}
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrationDB(cmd, func(ctx context.Context, r migration.Runner, db *sql.DB) error {
			statuses, err := r.Status(ctx, db)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
			for _, s := range statuses {
				at := "-"
				if !s.AppliedAt.IsZero() {
					at = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Name, s.State, at)
			}
			return w.Flush()
		})
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "list pending migrations without applying them")
	migrateCmd.AddCommand(migrateStatusCmd)
}

func withMigrationDB(cmd *cobra.Command, fn func(ctx context.Context, r migration.Runner, db *sql.DB) error) error {
	driver, err := cfg.Database.Driver()
	if err != nil {
		return err
	}
	if driver != config.DriverPostgres {
		return fmt.Errorf("migrate requires a postgres DATABASE_URL, got %s", driver)
	}

	connectCtx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	r := migration.Runner{Source: migration.Source(cfg.Database.MigrationsDir), Logger: log}
	return fn(cmd.Context(), r, db.SQLDB())
}
