package ports

import (
	"context"

	"benchgraph/domain/core"
	"benchgraph/domain/run"
)

// RunRepository persists the run ledger
type RunRepository interface {
	Save(ctx context.Context, rec *run.Record) error
	Get(ctx context.Context, id core.RunID) (*run.Record, error)
	List(ctx context.Context, limit int) ([]*run.Record, error)
}
