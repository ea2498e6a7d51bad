package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"benchgraph/adapters/db/postgres/migrations"
	"benchgraph/adapters/postgres"
	"benchgraph/internal"
	"benchgraph/internal/config"
	"benchgraph/internal/errors"
)

func newMigrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the run ledger schema to DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.ConfigInvalid("DATABASE_URL is required for migrate")
			}

			db, err := postgres.Connect(cmd.Context(), cfg.Database.URL)
			if err != nil {
				return err
			}
			defer db.Close()

			logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
			m := migrations.NewMigrator(db.DB, logger)
			out := cmd.OutOrStdout()

			if status {
				list, err := m.Status(cmd.Context())
				if err != nil {
					return err
				}
				applied := 0
				for _, s := range list {
					state := "pending"
					if s.Applied {
						state = "applied"
						applied++
					}
					fmt.Fprintf(out, "  %s: %s\n", s.Version, state)
				}
				fmt.Fprintf(out, "%d/%d migrations applied\n", applied, len(list))
				return nil
			}

			done, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(done) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			fmt.Fprintf(out, "Applied %d migration(s): %v\n", len(done), done)
			return nil
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "show migration status instead of applying")
	return cmd
}
