package chart

import (
	"html/template"

	"benchgraph/domain/benchmark"
)

// Style carries the presentation settings shared by every renderer
type Style struct {
	Title       string
	XLabel      string
	YLabel      string
	Width       int
	Height      int
	Background  string
	Foreground  string
	LineWidth   float64
	LineAlpha   float64
	LegendTitle string
}

// DefaultStyle mirrors the layout the capture scripts have always produced
func DefaultStyle() Style {
	return Style{
		Title:       "FrameTime and PresentTime (ms) Over Frames and Multiple Runs",
		XLabel:      "Frame",
		YLabel:      "Time (ms)",
		Width:       1000,
		Height:      500,
		Background:  "black",
		Foreground:  "white",
		LineWidth:   2,
		LineAlpha:   0.7,
		LegendTitle: "click to hide",
	}
}

// Figure is one line chart with its series and their visibility state
type Figure struct {
	Style      Style
	Series     []benchmark.Series
	Visibility *benchmark.Visibility
	// Summary is an optional pre-rendered HTML panel shown under the chart
	Summary template.HTML
	RunID   string
}

// VisibleSeries returns the series the visibility model currently draws
func (f *Figure) VisibleSeries() []benchmark.Series {
	var out []benchmark.Series
	for _, s := range f.Visibility.Apply(f.Series) {
		if s.Visible {
			out = append(out, s)
		}
	}
	return out
}

// Context owns the layout roots of one rendering pass. Callers create one per
// invocation and Reset it when done; nothing is shared between runs.
type Context struct {
	roots []*Figure
}

// NewContext returns an empty rendering context
func NewContext() *Context {
	return &Context{}
}

// AddRoot appends a figure to the document
func (c *Context) AddRoot(f *Figure) {
	if f.Visibility == nil {
		f.Visibility = benchmark.NewVisibility()
	}
	c.roots = append(c.roots, f)
}

// Roots returns the figures in insertion order
func (c *Context) Roots() []*Figure {
	return c.roots
}

// Reset drops every root so the context cannot leak into a later run
func (c *Context) Reset() {
	c.roots = nil
}
