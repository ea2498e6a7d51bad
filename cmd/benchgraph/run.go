package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"benchgraph/adapters/csvfile"
	"benchgraph/adapters/render"
	"benchgraph/app"
	"benchgraph/domain/chart"
	"benchgraph/internal/config"
	"benchgraph/internal/container"
	"benchgraph/internal/errors"
	"benchgraph/internal/presets"
)

// runFlags are the pipeline options shared by run, clean and serve
type runFlags struct {
	input            string
	skipRows         int
	outlierThreshold float64
	noOutliers       bool
	outlierPolicy    string
	order            string
	columns          []string
	preset           string
	suffix           string
	chart            string
	xlsx             bool
	png              bool
	background       string
	title            string
	summary          bool
}

func (f *runFlags) register(cmd *cobra.Command, withChart bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "capture file to clean (.csv)")
	fs.IntVar(&f.skipRows, "skip-rows", 20, "leading metadata rows to discard")
	fs.Float64Var(&f.outlierThreshold, "outlier-threshold", 10, "z-score above which a value is an outlier (enables removal)")
	fs.BoolVar(&f.noOutliers, "no-outliers", false, "disable outlier removal")
	fs.StringVar(&f.outlierPolicy, "outlier-policy", "row", "what to drop for an outlier: row or gap")
	fs.StringVar(&f.order, "order", "filter-first", "step order: filter-first or outliers-first")
	fs.StringSliceVar(&f.columns, "columns", nil, "only keep columns whose name contains one of these substrings")
	fs.StringVar(&f.preset, "preset", "", "named capture profile (see BENCHGRAPH_PRESETS)")
	fs.StringVar(&f.suffix, "suffix", "_output", "suffix appended to the cleaned file name")
	fs.BoolVar(&f.xlsx, "xlsx", false, "also write the cleaned table as .xlsx")
	if withChart {
		fs.StringVar(&f.chart, "chart", "interactive_chart.html", "path of the interactive chart")
		fs.BoolVar(&f.png, "png", false, "also write a static .png of the chart")
		fs.StringVar(&f.background, "background", "black", "chart background color")
		fs.StringVar(&f.title, "title", "", "chart title")
		fs.BoolVar(&f.summary, "summary", false, "print the run summary as markdown")
	}
}

func (f *runFlags) inputPath(args []string) (string, error) {
	if f.input != "" {
		return f.input, nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", fmt.Errorf("an input file is required (--input or first argument)")
}

// resolveConfig layers configuration: environment, then preset, then any
// flag the user set explicitly.
func (f *runFlags) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if f.preset != "" {
		src, err := presets.Load(cfg.Presets.File)
		if err != nil {
			return nil, err
		}
		p, err := src.Get(f.preset)
		if err != nil {
			return nil, err
		}
		p.Apply(cfg)
	}

	fs := cmd.Flags()
	if fs.Changed("skip-rows") {
		cfg.Clean.SkipRows = f.skipRows
	}
	if fs.Changed("outlier-threshold") {
		cfg.Clean.OutlierThreshold = f.outlierThreshold
		cfg.Clean.OutliersEnabled = true
	}
	if fs.Changed("no-outliers") {
		cfg.Clean.OutliersEnabled = !f.noOutliers
	}
	if fs.Changed("outlier-policy") {
		cfg.Clean.OutlierPolicy = f.outlierPolicy
	}
	if fs.Changed("order") {
		cfg.Clean.Order = f.order
	}
	if fs.Changed("columns") {
		cfg.Clean.Columns = f.columns
	}
	if fs.Changed("suffix") {
		cfg.Output.Suffix = f.suffix
	}
	if fs.Changed("xlsx") {
		cfg.Output.XLSX = f.xlsx
	}
	if fs.Changed("png") {
		cfg.Output.PNG = f.png
	}
	if fs.Changed("chart") {
		cfg.Chart.File = f.chart
	}
	if fs.Changed("background") {
		cfg.Chart.Background = f.background
	}
	if fs.Changed("title") {
		cfg.Chart.Title = f.title
	}
	return cfg, nil
}

// buildRequest turns the resolved configuration into a pipeline request.
// withChart=false produces the cleaned file only.
func buildRequest(cfg *config.Config, input string, withChart bool) (app.RunRequest, error) {
	opts, err := cfg.CleanerOptions()
	if err != nil {
		return app.RunRequest{}, err
	}

	if strings.TrimSpace(cfg.Output.Suffix) == "" {
		return app.RunRequest{}, errors.ConfigInvalid("output suffix must not be empty")
	}
	output := csvfile.OutputPath(input, cfg.Output.Suffix)
	base := strings.TrimSuffix(output, filepath.Ext(output))

	if _, err := render.ParseColor(cfg.Chart.Background); err != nil {
		return app.RunRequest{}, errors.ConfigInvalid(fmt.Sprintf("background: %v", err))
	}
	style := chart.DefaultStyle()
	style.Background = cfg.Chart.Background
	if cfg.Chart.Title != "" {
		style.Title = cfg.Chart.Title
	}

	req := app.RunRequest{
		InputPath:  input,
		Options:    opts,
		Columns:    cfg.Clean.Columns,
		Style:      style,
		OutputPath: output,
	}
	if cfg.Output.XLSX {
		req.XLSXPath = base + ".xlsx"
	}
	if withChart {
		req.ChartPath = cfg.Chart.File
		if cfg.Output.PNG {
			req.PNGPath = base + ".png"
		}
	}
	return req, nil
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [input.csv]",
		Short: "Clean a capture and draw the interactive chart",
		Long: `Clean a capture and draw every column as a line series.

Example: benchgraph run --input capture.csv --skip-rows 20 --columns FrameTime,PresentTime`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, &flags, args, true)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newCleanCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "clean [input.csv]",
		Short: "Clean a capture without drawing a chart",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, &flags, args, false)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runPipeline(cmd *cobra.Command, flags *runFlags, args []string, withChart bool) error {
	input, err := flags.inputPath(args)
	if err != nil {
		return err
	}
	cfg, err := flags.resolveConfig(cmd)
	if err != nil {
		return err
	}
	req, err := buildRequest(cfg, input, withChart)
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

	res, err := c.Pipeline.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cleaned data from %s saved to %s\n", input, req.OutputPath)
	if withChart {
		fmt.Fprintf(out, "Chart with %d series saved to %s\n", len(res.Series), req.ChartPath)
	}
	for _, p := range []string{req.XLSXPath, req.PNGPath} {
		if p != "" {
			fmt.Fprintf(out, "Wrote %s\n", p)
		}
	}
	if res.Warning != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", res.Warning)
	}
	if flags.summary {
		fmt.Fprintln(out)
		fmt.Fprint(out, res.Markdown)
	}
	return nil
}
