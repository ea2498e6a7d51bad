// Package cleaner turns raw capture rows into a cleaned table: it strips
// disallowed characters, drops blank rows and leading metadata, and can
// remove statistical outliers from numeric columns.
package cleaner

import (
	"fmt"

	"benchgraph/domain/benchmark"
	"benchgraph/internal"
	"benchgraph/internal/errors"
)

// Report summarizes what one cleaning pass removed
type Report struct {
	RowsRead           int            `json:"rows_read"`
	RowsSkipped        int            `json:"rows_skipped"`
	BlankRowsDropped   int            `json:"blank_rows_dropped"`
	OutlierRowsDropped int            `json:"outlier_rows_dropped"`
	OutlierCells       map[string]int `json:"outlier_cells"`
	MalformedRows      int            `json:"malformed_rows"`
	DataRows           int            `json:"data_rows"`
	Columns            []ColumnStats  `json:"columns,omitempty"`
}

// TotalOutliers returns the number of outlier cells across all columns
func (r Report) TotalOutliers() int {
	n := 0
	for _, v := range r.OutlierCells {
		n += v
	}
	return n
}

// Empty reports whether no data rows survived
func (r Report) Empty() bool {
	return r.DataRows == 0
}

// Result is the output of Clean
type Result struct {
	// Records holds the retained rows, header first, as written to the cleaned file
	Records []benchmark.Record
	Table   *benchmark.Table
	Report  Report
}

// Cleaner runs the cleaning steps with a fixed set of options
type Cleaner struct {
	opts   Options
	logger *internal.Logger
}

// New validates opts and returns a Cleaner
func New(opts Options, logger *internal.Logger) (*Cleaner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Order == "" {
		opts.Order = OrderFilterFirst
	}
	if opts.Outliers.Policy == "" {
		opts.Outliers.Policy = PolicyRow
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Cleaner{opts: opts, logger: logger.With("cleaner")}, nil
}

// Options returns the options the cleaner runs with
func (c *Cleaner) Options() Options {
	return c.opts
}

// Clean runs skip, sanitize, blank-row filtering and optional outlier removal
// over records. The input is not modified.
func (c *Cleaner) Clean(records []benchmark.Record) *Result {
	rep := Report{RowsRead: len(records), OutlierCells: make(map[string]int)}

	skip := c.opts.SkipRows
	if skip > len(records) {
		skip = len(records)
	}
	rep.RowsSkipped = skip

	recs := make([]benchmark.Record, 0, len(records)-skip)
	for _, r := range records[skip:] {
		recs = append(recs, SanitizeRecord(r))
	}

	filter := func(in []benchmark.Record) []benchmark.Record {
		out := in[:0]
		for _, r := range in {
			if r.IsBlank() {
				rep.BlankRowsDropped++
				continue
			}
			out = append(out, r)
		}
		return out
	}

	switch {
	case !c.opts.Outliers.Enabled:
		recs = filter(recs)
	case c.opts.Order == OrderOutliersFirst:
		recs = filter(c.removeOutliers(recs, &rep))
	default:
		recs = c.removeOutliers(filter(recs), &rep)
	}

	res := &Result{Records: recs, Report: rep}
	if len(recs) > 0 {
		table, truncated := benchmark.NewTable(recs[0], recs[1:])
		res.Table = table
		res.Report.MalformedRows = truncated
	} else {
		res.Table, _ = benchmark.NewTable(nil, nil)
	}
	res.Report.DataRows = res.Table.Len()

	c.logger.Debug("read=%d skipped=%d blank=%d outlier_rows=%d outlier_cells=%d kept=%d",
		rep.RowsRead, rep.RowsSkipped, rep.BlankRowsDropped, res.Report.OutlierRowsDropped,
		res.Report.TotalOutliers(), res.Report.DataRows)
	if res.Report.MalformedRows > 0 {
		width := len(recs[0])
		for i, r := range recs[1:] {
			if len(r) > width {
				c.logger.Debug("%v", errors.MalformedRow(i+1,
					fmt.Sprintf("%d fields for %d columns, truncated", len(r), width)))
			}
		}
	}
	return res
}
