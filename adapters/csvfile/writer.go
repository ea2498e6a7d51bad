package csvfile

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"benchgraph/domain/benchmark"
)

// Writer encodes records with the capture delimiter
type Writer struct {
	delimiter rune
}

// NewWriter creates a writer for the capture delimiter
func NewWriter() *Writer {
	return &Writer{delimiter: Delimiter}
}

// WriteRecords writes one line per record, quoting only where required
func (w *Writer) WriteRecords(dst io.Writer, records []benchmark.Record) error {
	cw := csv.NewWriter(dst)
	cw.Comma = w.delimiter
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputPath places the cleaned file next to input: bench.csv -> bench_output.csv
func OutputPath(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}
