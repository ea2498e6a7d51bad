package run

import (
	"time"

	"benchgraph/domain/core"
)

// Status is the outcome of one pipeline invocation
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
)

// Record is the ledger entry kept for every invocation
type Record struct {
	ID           core.RunID    `db:"id" json:"id"`
	InputPath    string        `db:"input_path" json:"input_path"`
	OutputPath   string        `db:"output_path" json:"output_path"`
	ChartPath    string        `db:"chart_path" json:"chart_path"`
	RowsRead     int           `db:"rows_read" json:"rows_read"`
	RowsKept     int           `db:"rows_kept" json:"rows_kept"`
	OutlierRows  int           `db:"outlier_rows" json:"outlier_rows"`
	OutlierCells int           `db:"outlier_cells" json:"outlier_cells"`
	SeriesCount  int           `db:"series_count" json:"series_count"`
	Status       Status        `db:"status" json:"status"`
	ErrorMessage string        `db:"error_message" json:"error_message,omitempty"`
	StartedAt    time.Time     `db:"started_at" json:"started_at"`
	Duration     time.Duration `db:"-" json:"duration"`
}

// Succeeded reports whether the run produced its artifacts
func (r Record) Succeeded() bool {
	return r.Status == StatusSucceeded || r.Status == StatusEmpty
}
