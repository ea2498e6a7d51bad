package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
	"benchgraph/domain/core"
	"benchgraph/domain/run"
	"benchgraph/internal"
	"benchgraph/internal/artifact"
	"benchgraph/internal/cleaner"
	apperrors "benchgraph/internal/errors"
	"benchgraph/internal/report"
	"benchgraph/internal/series"
	"benchgraph/ports"
)

// PipelineService runs read -> clean -> build -> render for one capture file
type PipelineService struct {
	source   ports.RecordSource
	writer   ports.RecordWriter
	exporter ports.TableExporter
	html     ports.ChartRenderer
	png      ports.ChartRenderer
	runs     ports.RunRepository
	logger   *internal.Logger
}

// PipelineDeps bundles the adapters the pipeline drives
type PipelineDeps struct {
	Source   ports.RecordSource
	Writer   ports.RecordWriter
	Exporter ports.TableExporter
	HTML     ports.ChartRenderer
	PNG      ports.ChartRenderer
	Runs     ports.RunRepository
	Logger   *internal.Logger
}

// NewPipelineService creates a pipeline service
func NewPipelineService(deps PipelineDeps) *PipelineService {
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &PipelineService{
		source:   deps.Source,
		writer:   deps.Writer,
		exporter: deps.Exporter,
		html:     deps.HTML,
		png:      deps.PNG,
		runs:     deps.Runs,
		logger:   logger.With("pipeline"),
	}
}

// RunRequest describes one invocation. Empty artifact paths are not written,
// except OutputPath which is always required.
type RunRequest struct {
	InputPath  string
	Options    cleaner.Options
	Columns    []string
	Style      chart.Style
	OutputPath string
	ChartPath  string
	XLSXPath   string
	PNGPath    string
}

// Prepared is the in-memory result of cleaning and series construction
type Prepared struct {
	RunID     core.RunID
	InputPath string
	Clean     *cleaner.Result
	// Table is the cleaned table narrowed to the selected columns
	Table     *benchmark.Table
	Series    []benchmark.Series
	Summaries []benchmark.SeriesSummary
	Markdown  string
	Figure    *chart.Figure
	// Warning is set when the run produced no data rows
	Warning error
}

// RunResult is what a completed run wrote
type RunResult struct {
	*Prepared
	Record    *run.Record
	Artifacts []string
}

// Prepare reads and cleans the input and builds the figure, without writing anything
func (s *PipelineService) Prepare(ctx context.Context, req RunRequest) (*Prepared, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := cleaner.New(req.Options, s.logger)
	if err != nil {
		return nil, apperrors.WithCode(apperrors.CodeInvalidInput, err)
	}

	records, err := s.source.ReadFile(req.InputPath)
	if err != nil {
		return nil, err
	}

	res := c.Clean(records)
	p := &Prepared{
		RunID:     core.NewRunID(),
		InputPath: req.InputPath,
		Clean:     res,
		Table:     res.Table.Select(req.Columns),
	}
	p.Series = series.Build(p.Table)
	p.Summaries = report.Summarize(p.Series)
	p.Markdown = report.Markdown(req.InputPath, res.Report, p.Summaries)

	style := req.Style
	if style.Width == 0 {
		style = chart.DefaultStyle()
	}
	p.Figure = &chart.Figure{
		Style:      style,
		Series:     p.Series,
		Visibility: benchmark.NewVisibility(),
		Summary:    report.HTML(p.Markdown),
		RunID:      p.RunID.String(),
	}

	if res.Report.Empty() || len(p.Series) == 0 {
		p.Warning = apperrors.EmptyResult(req.InputPath)
		s.logger.Warn("%v", p.Warning)
	}
	s.logger.Info("%s: %d rows read, %d kept, %d series", req.InputPath,
		res.Report.RowsRead, res.Report.DataRows, len(p.Series))
	return p, nil
}

// Run prepares the input, writes every requested artifact and records the run.
// Either every artifact is written or none is.
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	started := time.Now()
	rec := &run.Record{
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		ChartPath:  req.ChartPath,
		StartedAt:  started.UTC(),
	}

	if req.OutputPath == "" {
		return nil, apperrors.InvalidInput("output path is required")
	}
	for _, out := range []string{req.OutputPath, req.ChartPath, req.XLSXPath, req.PNGPath} {
		if out != "" && samePath(out, req.InputPath) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("output %s would overwrite the input", out))
		}
	}

	p, err := s.Prepare(ctx, req)
	if err != nil {
		rec.ID = core.NewRunID()
		s.finish(ctx, rec, started, err)
		return nil, err
	}
	rec.ID = p.RunID
	rec.RowsRead = p.Clean.Report.RowsRead
	rec.RowsKept = p.Clean.Report.DataRows
	rec.OutlierRows = p.Clean.Report.OutlierRowsDropped
	rec.OutlierCells = p.Clean.Report.TotalOutliers()
	rec.SeriesCount = len(p.Series)

	rctx := chart.NewContext()
	rctx.AddRoot(p.Figure)
	defer rctx.Reset()

	set := artifact.NewSet()
	set.Add(req.OutputPath, func(w io.Writer) error {
		return s.writer.WriteRecords(w, p.Clean.Records)
	})
	if req.ChartPath != "" && s.html != nil {
		set.Add(req.ChartPath, func(w io.Writer) error {
			return s.html.Render(w, rctx)
		})
	}
	if req.XLSXPath != "" && s.exporter != nil {
		set.Add(req.XLSXPath, func(w io.Writer) error {
			return s.exporter.Export(w, p.Table, p.Summaries)
		})
	}
	if req.PNGPath != "" && s.png != nil {
		set.Add(req.PNGPath, func(w io.Writer) error {
			return s.png.Render(w, rctx)
		})
	}

	if err := set.Commit(ctx); err != nil {
		s.finish(ctx, rec, started, err)
		return nil, err
	}

	rec.Status = run.StatusSucceeded
	if p.Warning != nil {
		rec.Status = run.StatusEmpty
	}
	s.finish(ctx, rec, started, nil)
	return &RunResult{Prepared: p, Record: rec, Artifacts: set.Paths()}, nil
}

// History returns the most recent runs, newest first
func (s *PipelineService) History(ctx context.Context, limit int) ([]*run.Record, error) {
	if s.runs == nil {
		return nil, nil
	}
	return s.runs.List(ctx, limit)
}

// Lookup returns one recorded run
func (s *PipelineService) Lookup(ctx context.Context, id core.RunID) (*run.Record, error) {
	if s.runs == nil {
		return nil, fmt.Errorf("%w %s", core.ErrRunNotFound, id)
	}
	return s.runs.Get(ctx, id)
}

// finish stamps the record and stores it. The ledger is best effort: a
// storage failure never fails the run itself.
func (s *PipelineService) finish(ctx context.Context, rec *run.Record, started time.Time, runErr error) {
	rec.Duration = time.Since(started)
	if runErr != nil {
		rec.Status = run.StatusFailed
		rec.ErrorMessage = runErr.Error()
	}
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(ctx, rec); err != nil {
		s.logger.Warn("could not record run %s: %v", rec.ID, err)
	}
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
