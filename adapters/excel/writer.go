package excel

import (
	"fmt"
	"io"

	"benchgraph/domain/benchmark"

	"github.com/xuri/excelize/v2"
)

const (
	cleanedSheet = "Cleaned"
	summarySheet = "Summary"
)

// Exporter writes a cleaned table as an .xlsx workbook
type Exporter struct{}

// NewExporter creates an xlsx exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes the table on a "Cleaned" sheet (numeric cells stored as
// numbers, header frozen) and the per-series statistics on a "Summary" sheet.
func (e *Exporter) Export(w io.Writer, table *benchmark.Table, summaries []benchmark.SeriesSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cleanedSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, table.Width())
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(cleanedSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetRowStyle(cleanedSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r := 0; r < table.Len(); r++ {
		row := make([]interface{}, table.Width())
		for c := range table.Columns {
			if v, ok := table.Float(c, r); ok {
				row[c] = v
			} else {
				row[c] = table.ColumnAt(c)[r]
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(cleanedSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if table.Width() > 0 {
		if err := f.SetPanes(cleanedSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if err := writeSummary(f, summaries, bold); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func writeSummary(f *excelize.File, summaries []benchmark.SeriesSummary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}
	header := []interface{}{"Series", "Samples", "Mean", "Min", "Max", "p50", "p95", "p99"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(summarySheet, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, s := range summaries {
		row := []interface{}{s.Label, s.Count, s.Mean, s.Min, s.Max, s.P50, s.P95, s.P99}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
