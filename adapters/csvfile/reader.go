package csvfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"benchgraph/domain/benchmark"
	"benchgraph/internal"
	"benchgraph/internal/errors"
)

// Extension is the only input suffix accepted
const Extension = ".csv"

// Delimiter used by the capture tool
const Delimiter = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads semicolon-delimited capture files
type Reader struct {
	delimiter rune
	logger    *internal.Logger
}

// NewReader creates a reader for the capture delimiter
func NewReader(logger *internal.Logger) *Reader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Reader{delimiter: Delimiter, logger: logger.With("csv")}
}

// CheckExtension rejects inputs that are not .csv files
func CheckExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return errors.UnsupportedExtension(path, Extension)
	}
	return nil
}

// ReadFile validates the extension and encoding of path and returns its records.
// Ragged rows are returned as-is.
func (r *Reader) ReadFile(path string) ([]benchmark.Record, error) {
	if err := CheckExtension(path); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FileNotReadable(path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.FileNotReadable(path, fmt.Errorf("file is not valid UTF-8"))
	}

	records, err := r.Read(bytes.NewReader(data))
	if err != nil {
		return nil, errors.FileNotReadable(path, err)
	}
	r.logger.Debug("read %s in %.2fms (%d rows)", path, float64(time.Since(start).Nanoseconds())/1e6, len(records))
	return records, nil
}

// Read parses delimited records from src. Empty lines come back as empty
// records so row counts match physical lines of the file.
func (r *Reader) Read(src io.Reader) ([]benchmark.Record, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records []benchmark.Record
	next := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		first, _ := cr.FieldPos(0)
		for ; next < first; next++ {
			records = append(records, benchmark.Record{})
		}
		last, _ := cr.FieldPos(len(rec) - 1)
		next = last + 1
		records = append(records, benchmark.Record(rec))
	}
}
