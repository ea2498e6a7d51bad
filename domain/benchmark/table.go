package benchmark

import (
	"strings"
)

// Record is one delimited row as read from the capture file
type Record []string

// IsBlank reports whether every cell of the record is empty after trimming
func (r Record) IsBlank() bool {
	for _, cell := range r {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Table is the cleaned, column-oriented view of a capture.
// Every column holds exactly Len() cells; column order follows the header.
type Table struct {
	Columns []string
	values  [][]string
}

// NewTable builds a table from a header and data rows. Short rows are padded
// with empty cells and cells beyond the header width are dropped; the number
// of rows that had to be truncated is returned so callers can report them.
// Unnamed columns that carry no data (trailing delimiters) are removed.
func NewTable(header Record, rows []Record) (*Table, int) {
	width := len(header)
	values := make([][]string, width)
	for c := range values {
		values[c] = make([]string, 0, len(rows))
	}

	truncated := 0
	for _, row := range rows {
		if len(row) > width {
			truncated++
		}
		for c := 0; c < width; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			values[c] = append(values[c], cell)
		}
	}

	t := &Table{}
	for c, name := range header {
		name = strings.TrimSpace(name)
		if name == "" && allBlank(values[c]) {
			continue
		}
		t.Columns = append(t.Columns, name)
		t.values = append(t.values, values[c])
	}
	return t, truncated
}

func allBlank(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil || len(t.values) == 0 {
		return 0
	}
	return len(t.values[0])
}

// Width returns the number of columns
func (t *Table) Width() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// IsEmpty reports whether the table has no data rows or no columns
func (t *Table) IsEmpty() bool {
	return t.Len() == 0 || t.Width() == 0
}

// Column returns the cells of the named column
func (t *Table) Column(name string) ([]string, bool) {
	for i, col := range t.Columns {
		if col == name {
			return t.values[i], true
		}
	}
	return nil, false
}

// ColumnAt returns the cells of the i-th column
func (t *Table) ColumnAt(i int) []string {
	return t.values[i]
}

// Float returns the numeric value of a cell, or false when it is blank or not a number
func (t *Table) Float(col, row int) (float64, bool) {
	return ParseFloat(t.values[col][row])
}

// Select narrows the table to columns whose name contains any of the given
// substrings. An empty filter returns the table unchanged.
func (t *Table) Select(substrings []string) *Table {
	if len(substrings) == 0 {
		return t
	}
	out := &Table{}
	for i, col := range t.Columns {
		for _, s := range substrings {
			if s != "" && strings.Contains(col, s) {
				out.Columns = append(out.Columns, col)
				out.values = append(out.values, t.values[i])
				break
			}
		}
	}
	return out
}

// Records returns the header followed by the data rows
func (t *Table) Records() []Record {
	out := make([]Record, 0, t.Len()+1)
	out = append(out, append(Record(nil), t.Columns...))
	for r := 0; r < t.Len(); r++ {
		row := make(Record, t.Width())
		for c := range t.Columns {
			row[c] = t.values[c][r]
		}
		out = append(out, row)
	}
	return out
}
