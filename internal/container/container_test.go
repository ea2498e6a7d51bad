package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchgraph/adapters/memory"
	"benchgraph/internal/config"
)

func TestNew_DefaultsToMemoryLedger(t *testing.T) {
	c, err := New(&config.Config{LogLevel: "ERROR"}, nil)
	require.NoError(t, err)

	assert.IsType(t, &memory.RunRepository{}, c.RunRepo)
	assert.NotNil(t, c.Pipeline)
	assert.NotNil(t, c.HTML)
	assert.Nil(t, c.DB)
	assert.NoError(t, c.Close())
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestInitWithDatabase_RejectsNil(t *testing.T) {
	c, err := New(&config.Config{}, nil)
	require.NoError(t, err)
	assert.Error(t, c.InitWithDatabase(nil))
}
