package cleaner

import (
	"strings"

	"benchgraph/domain/benchmark"
)

// The capture tool leaves NULs and the closing bracket of truncated tokens in its rows.
var disallowed = strings.NewReplacer("\x00", "", "]", "")

// SanitizeCell removes NUL and ']' characters from a cell
func SanitizeCell(cell string) string {
	if !strings.ContainsAny(cell, "\x00]") {
		return cell
	}
	return disallowed.Replace(cell)
}

// SanitizeRecord returns a sanitized copy of the record
func SanitizeRecord(r benchmark.Record) benchmark.Record {
	out := make(benchmark.Record, len(r))
	for i, cell := range r {
		out[i] = SanitizeCell(cell)
	}
	return out
}
