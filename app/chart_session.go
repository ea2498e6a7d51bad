package app

import (
	"context"
	"sync"

	"benchgraph/domain/chart"
	"benchgraph/domain/run"
)

// ChartSession holds the figure served by the web UI. Reload swaps in a new
// run atomically; readers always see a complete figure or nil.
type ChartSession struct {
	pipeline *PipelineService
	req      RunRequest

	mu     sync.RWMutex
	result *RunResult
}

// NewChartSession binds a session to one run request
func NewChartSession(pipeline *PipelineService, req RunRequest) *ChartSession {
	return &ChartSession{pipeline: pipeline, req: req}
}

// Reload reruns the pipeline and publishes the new figure. Visibility state
// carries over for series ids that still exist.
func (s *ChartSession) Reload(ctx context.Context) (*RunResult, error) {
	res, err := s.pipeline.Run(ctx, s.req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		for _, id := range s.result.Figure.Visibility.Hidden() {
			if id < len(res.Figure.Series) {
				res.Figure.Visibility.Set(id, false)
			}
		}
	}
	s.result = res
	return res, nil
}

// Current returns the figure on display, or nil before the first Reload
func (s *ChartSession) Current() *chart.Figure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	return s.result.Figure
}

// Result returns the last successful run
func (s *ChartSession) Result() *RunResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// History proxies the run ledger
func (s *ChartSession) History(ctx context.Context, limit int) ([]*run.Record, error) {
	return s.pipeline.History(ctx, limit)
}
