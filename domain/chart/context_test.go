package chart

import (
	"testing"

	"benchgraph/domain/benchmark"

	"github.com/stretchr/testify/assert"
)

func TestContextRootsAndReset(t *testing.T) {
	ctx := NewContext()
	fig := &Figure{Style: DefaultStyle()}
	ctx.AddRoot(fig)

	assert.Len(t, ctx.Roots(), 1)
	assert.NotNil(t, fig.Visibility, "AddRoot should attach a visibility model")

	ctx.Reset()
	assert.Empty(t, ctx.Roots())
}

func TestFigureVisibleSeries(t *testing.T) {
	fig := &Figure{
		Series: []benchmark.Series{{ID: 0, Label: "FrameTime"}, {ID: 1, Label: "PresentTime"}},
	}
	NewContext().AddRoot(fig)

	fig.Visibility.Toggle(0)
	visible := fig.VisibleSeries()
	if assert.Len(t, visible, 1) {
		assert.Equal(t, "PresentTime", visible[0].Label)
	}
}
