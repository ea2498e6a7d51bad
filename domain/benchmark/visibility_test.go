package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibilityDefaultsToVisible(t *testing.T) {
	v := NewVisibility()
	for id := 0; id < 5; id++ {
		assert.True(t, v.Visible(id))
	}
	assert.Empty(t, v.Hidden())
}

func TestVisibilityToggleIsolated(t *testing.T) {
	v := NewVisibility()

	assert.False(t, v.Toggle(1))
	assert.False(t, v.Visible(1))
	assert.True(t, v.Visible(0), "toggling series 1 must not affect series 0")
	assert.True(t, v.Visible(2))

	assert.True(t, v.Toggle(1))
	assert.True(t, v.Visible(1))
}

func TestVisibilityToggleOrderIndependent(t *testing.T) {
	a := NewVisibility()
	a.Toggle(0)
	a.Toggle(3)

	b := NewVisibility()
	b.Toggle(3)
	b.Toggle(0)

	assert.Equal(t, a.Hidden(), b.Hidden())
	assert.Equal(t, []int{0, 3}, a.Hidden())
}

func TestVisibilitySetIdempotent(t *testing.T) {
	v := NewVisibility()
	v.Set(2, false)
	v.Set(2, false)
	assert.Equal(t, []int{2}, v.Hidden())

	v.Set(2, true)
	v.Set(2, true)
	assert.Empty(t, v.Hidden())
}

func TestVisibilityApplyLeavesDataUntouched(t *testing.T) {
	series := []Series{
		{ID: 0, Points: []Point{{0, 1}, {1, 2}}, Visible: true},
		{ID: 1, Points: []Point{{0, 3}}, Visible: true},
	}
	v := NewVisibility()
	v.Toggle(0)

	applied := v.Apply(series)
	assert.False(t, applied[0].Visible)
	assert.True(t, applied[1].Visible)
	assert.Equal(t, series[0].Points, applied[0].Points)
	assert.True(t, series[0].Visible, "Apply must not mutate its input")
}
