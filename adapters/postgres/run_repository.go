package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"benchgraph/domain/core"
	"benchgraph/domain/run"
	apperrors "benchgraph/internal/errors"
	"benchgraph/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// Connect opens a pooled connection and verifies it
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to connect to database", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// runRow is the storage shape of run.Record
type runRow struct {
	run.Record
	DurationMS int64 `db:"duration_ms"`
}

const runColumns = `id, input_path, output_path, chart_path, rows_read, rows_kept,
	outlier_rows, outlier_cells, series_count, status, error_message, started_at, duration_ms`

func (r runRow) record() *run.Record {
	rec := r.Record
	rec.Duration = time.Duration(r.DurationMS) * time.Millisecond
	return &rec
}

// Save upserts a run record
func (r *RunRepositoryImpl) Save(ctx context.Context, rec *run.Record) error {
	row := runRow{Record: *rec, DurationMS: rec.Duration.Milliseconds()}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO benchgraph_runs (`+runColumns+`)
		VALUES (:id, :input_path, :output_path, :chart_path, :rows_read, :rows_kept,
			:outlier_rows, :outlier_cells, :series_count, :status, :error_message, :started_at, :duration_ms)
		ON CONFLICT (id) DO UPDATE SET
			output_path = EXCLUDED.output_path,
			chart_path = EXCLUDED.chart_path,
			rows_read = EXCLUDED.rows_read,
			rows_kept = EXCLUDED.rows_kept,
			outlier_rows = EXCLUDED.outlier_rows,
			outlier_cells = EXCLUDED.outlier_cells,
			series_count = EXCLUDED.series_count,
			status = EXCLUDED.status,
			error_message = EXCLUDED.error_message,
			duration_ms = EXCLUDED.duration_ms
	`, row)
	if err != nil {
		return apperrors.DatabaseError("failed to save run", err)
	}
	return nil
}

// Get retrieves a run by ID
func (r *RunRepositoryImpl) Get(ctx context.Context, id core.RunID) (*run.Record, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `SELECT `+runColumns+` FROM benchgraph_runs WHERE id = $1`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get run", err)
	}
	return row.record(), nil
}

// List returns the most recent runs first; limit <= 0 means all
func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]*run.Record, error) {
	query := `SELECT ` + runColumns + ` FROM benchgraph_runs ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.DatabaseError("failed to list runs", err)
	}
	out := make([]*run.Record, len(rows))
	for i, row := range rows {
		out[i] = row.record()
	}
	return out, nil
}
