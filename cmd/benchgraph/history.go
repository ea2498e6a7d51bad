package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"benchgraph/domain/core"
	"benchgraph/domain/run"
	"benchgraph/internal/config"
	"benchgraph/internal/container"
	"benchgraph/internal/errors"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent runs from the run ledger",
		Long: `List recent runs. Runs are only persisted across invocations when
DATABASE_URL points at a migrated PostgreSQL database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c, err := container.New(cfg, nil)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Connect(cmd.Context()); err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				c.Logger.Warn("DATABASE_URL not set; the in-memory ledger is always empty here")
			}

			var runs []*run.Record
			if runID != "" {
				id, err := core.ParseRunID(runID)
				if err != nil {
					return errors.WithCode(errors.CodeInvalidInput, err)
				}
				rec, err := c.Pipeline.Lookup(cmd.Context(), id)
				if err != nil {
					return err
				}
				runs = append(runs, rec)
			} else {
				runs, err = c.Pipeline.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tSTATUS\tINPUT\tROWS\tKEPT\tOUTLIERS\tSERIES\tDURATION\tID")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
					r.StartedAt.Local().Format(time.DateTime), r.Status, r.InputPath,
					r.RowsRead, r.RowsKept, r.OutlierRows, r.SeriesCount,
					r.Duration.Round(time.Millisecond), r.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "id", "", "show a single run")
	return cmd
}
