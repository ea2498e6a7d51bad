package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"benchgraph/domain/core"
	"benchgraph/domain/run"
	"benchgraph/ports"
)

// RunRepository keeps the run ledger in process memory. It is used when no
// DATABASE_URL is configured, so history only lasts for one process.
type RunRepository struct {
	mu   sync.RWMutex
	runs map[core.RunID]run.Record
}

// NewRunRepository creates an empty in-memory ledger
func NewRunRepository() *RunRepository {
	return &RunRepository{runs: make(map[core.RunID]run.Record)}
}

var _ ports.RunRepository = (*RunRepository)(nil)

// Save inserts or replaces a record
func (r *RunRepository) Save(ctx context.Context, rec *run.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[rec.ID] = *rec
	return nil
}

// Get returns a copy of one record
func (r *RunRepository) Get(ctx context.Context, id core.RunID) (*run.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w %s", core.ErrRunNotFound, id)
	}
	return &rec, nil
}

// List returns the most recent records first; limit <= 0 means all
func (r *RunRepository) List(ctx context.Context, limit int) ([]*run.Record, error) {
	r.mu.RLock()
	out := make([]*run.Record, 0, len(r.runs))
	for _, rec := range r.runs {
		rec := rec
		out = append(out, &rec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
