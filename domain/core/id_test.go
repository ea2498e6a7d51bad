package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		require.False(t, id.IsEmpty(), "empty ID at iteration %d", i)
		require.False(t, ids[id], "duplicate ID %s", id)
		ids[id] = true
	}
}

func TestNewRunIDParses(t *testing.T) {
	id := NewRunID()
	parsed, err := ParseRunID(" " + id.String() + " ")
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseRunID(t *testing.T) {
	tests := []struct {
		input    string
		hasError bool
	}{
		{"0190b7a4-8c1e-7d3a-9f00-4b6a1c2d3e4f", false},
		{"run-123", true},
		{"", true},
		{"   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseRunID(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotFoundErrors(t *testing.T) {
	err := NewNotFoundError("run", "abc")
	assert.True(t, IsNotFoundError(err))
	assert.True(t, IsNotFoundError(fmt.Errorf("%w x", ErrRunNotFound)))
	assert.True(t, IsNotFoundError(ErrSeriesNotFound))
	assert.False(t, IsNotFoundError(fmt.Errorf("other")))
}
