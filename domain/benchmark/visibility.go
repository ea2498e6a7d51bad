package benchmark

import (
	"sort"
	"sync"
)

// Visibility maps series ids to their draw state. Unknown ids are visible.
// Each toggle touches exactly one id.
type Visibility struct {
	mu     sync.RWMutex
	hidden map[int]bool
}

// NewVisibility returns a model with every series visible
func NewVisibility() *Visibility {
	return &Visibility{hidden: make(map[int]bool)}
}

// Visible reports whether the series should be drawn
func (v *Visibility) Visible(id int) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return !v.hidden[id]
}

// Set forces the draw state of one series
func (v *Visibility) Set(id int, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if visible {
		delete(v.hidden, id)
		return
	}
	v.hidden[id] = true
}

// Toggle flips one series and returns its new state
func (v *Visibility) Toggle(id int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.hidden[id] {
		delete(v.hidden, id)
		return true
	}
	v.hidden[id] = true
	return false
}

// Hidden returns the sorted ids of hidden series
func (v *Visibility) Hidden() []int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ids := make([]int, 0, len(v.hidden))
	for id := range v.hidden {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Apply copies the model onto the Visible flag of each series
func (v *Visibility) Apply(series []Series) []Series {
	out := make([]Series, len(series))
	for i, s := range series {
		s.Visible = v.Visible(s.ID)
		out[i] = s
	}
	return out
}
