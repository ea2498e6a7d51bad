package ports

import (
	"io"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
)

// RecordSource loads raw delimited records from a capture file
type RecordSource interface {
	ReadFile(path string) ([]benchmark.Record, error)
}

// RecordWriter encodes cleaned records in the capture's delimited format
type RecordWriter interface {
	WriteRecords(w io.Writer, records []benchmark.Record) error
}

// TableExporter writes a cleaned table into another document format
type TableExporter interface {
	Export(w io.Writer, table *benchmark.Table, summaries []benchmark.SeriesSummary) error
}

// ChartRenderer draws every root of a rendering context
type ChartRenderer interface {
	Render(w io.Writer, ctx *chart.Context) error
}
