package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"benchgraph/app"
	"benchgraph/internal/container"
	"benchgraph/ui"
)

func newServeCmd() *cobra.Command {
	var flags runFlags
	var port string

	cmd := &cobra.Command{
		Use:   "serve [input.csv]",
		Short: "Run the pipeline once and serve the chart over HTTP",
		Long: `Run the pipeline once, then serve the chart with a JSON API for series visibility:

  GET  /                              interactive chart
  GET  /chart.png                     snapshot of the visible series
  POST /reload                        rerun the pipeline on the same input
  GET  /history.json                  recent runs
  GET  /api/series                    series with their visibility
  POST /api/series/{id}/toggle        flip one series
  PUT  /api/series/{id}/visibility    set one series, body {"visible": bool}`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := flags.inputPath(args)
			if err != nil {
				return err
			}
			cfg, err := flags.resolveConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			req, err := buildRequest(cfg, input, true)
			if err != nil {
				return err
			}

			c, err := container.New(cfg, nil)
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.Connect(cmd.Context()); err != nil {
				c.Logger.Warn("run ledger unavailable, keeping it in memory: %v", err)
			}

			session := app.NewChartSession(c.Pipeline, req)
			res, err := session.Reload(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleaned data from %s saved to %s\n", input, req.OutputPath)

			server := ui.NewChartServer(session, c.HTML, c.PNG, cfg.Server.GinMode, c.Logger)
			addr := net.JoinHostPort("", cfg.Server.Port)
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d series on http://localhost%s\n", len(res.Series), addr)
			return server.Start(cmd.Context(), addr)
		},
	}
	flags.register(cmd, true)
	cmd.Flags().StringVar(&port, "port", "8080", "HTTP port")
	return cmd
}
