package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"benchgraph/internal"
)

func main() {
	// .env is optional; the process environment always wins
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "benchgraph: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "benchgraph",
		Short: "Clean frame-time captures and plot them as an interactive chart",
		Long: `benchgraph reads a semicolon-delimited benchmark capture, removes metadata rows,
stray characters, blank rows and optional statistical outliers, writes the cleaned
file next to the input and draws every column as a toggleable line series.

Defaults come from BENCHGRAPH_* environment variables (or a .env file); presets
and flags override them in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newCleanCmd(),
		newServeCmd(),
		newHistoryCmd(),
		newMigrateCmd(),
	)
	return rootCmd
}
