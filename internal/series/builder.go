// Package series turns a cleaned table into the labelled, colored line
// series a chart draws. It performs no numeric transformation.
package series

import (
	"strings"

	"benchgraph/domain/benchmark"
)

// Label strips the unit annotation from a column name: "FrameTime (ms)" -> "FrameTime"
func Label(column string) string {
	if i := strings.IndexByte(column, '('); i >= 0 {
		column = column[:i]
	}
	return strings.TrimSpace(column)
}

// Build returns one series per table column, in column order. Blank and
// non-numeric cells are skipped; surviving points keep their row index.
func Build(table *benchmark.Table) []benchmark.Series {
	out := make([]benchmark.Series, 0, table.Width())
	for c, name := range table.Columns {
		s := benchmark.Series{
			ID:      c,
			Column:  name,
			Label:   Label(name),
			Color:   ColorAt(c),
			Visible: true,
		}
		for r := 0; r < table.Len(); r++ {
			if v, ok := table.Float(c, r); ok {
				s.Points = append(s.Points, benchmark.Point{Index: r, Value: v})
			}
		}
		out = append(out, s)
	}
	return out
}
