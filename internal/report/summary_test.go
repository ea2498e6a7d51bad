package report

import (
	"strings"
	"testing"

	"benchgraph/domain/benchmark"
	"benchgraph/internal/cleaner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(label string, values ...float64) benchmark.Series {
	s := benchmark.Series{Label: label}
	for i, v := range values {
		s.Points = append(s.Points, benchmark.Point{Index: i, Value: v})
	}
	return s
}

func TestSummarize(t *testing.T) {
	sums := Summarize([]benchmark.Series{
		seriesOf("FrameTime", 4, 1, 3, 2),
		seriesOf("Empty"),
	})

	require.Len(t, sums, 2)
	ft := sums[0]
	assert.Equal(t, "FrameTime", ft.Label)
	assert.Equal(t, 4, ft.Count)
	assert.InDelta(t, 2.5, ft.Mean, 1e-9)
	assert.Equal(t, 1.0, ft.Min)
	assert.Equal(t, 4.0, ft.Max)
	assert.Equal(t, 2.0, ft.P50)
	assert.Equal(t, 4.0, ft.P99)

	assert.Equal(t, benchmark.SeriesSummary{Label: "Empty"}, sums[1])
}

func TestSummarizeDoesNotReorderSeriesPoints(t *testing.T) {
	s := seriesOf("x", 3, 1, 2)
	Summarize([]benchmark.Series{s})
	assert.Equal(t, []float64{3, 1, 2}, s.Values())
}

func TestMarkdownAndHTML(t *testing.T) {
	rep := cleaner.Report{RowsRead: 25, RowsSkipped: 20, BlankRowsDropped: 1, DataRows: 3, OutlierCells: map[string]int{"a": 2}}
	md := Markdown("bench.csv", rep, Summarize([]benchmark.Series{seriesOf("Frame|Time", 1, 2, 3)}))

	assert.Contains(t, md, "- rows read: 25")
	assert.Contains(t, md, "- outlier cells: 2")
	assert.Contains(t, md, `Frame\|Time`)

	out := string(HTML(md))
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<li>rows skipped: 20</li>")
}

func TestMarkdownWithoutSeries(t *testing.T) {
	md := Markdown("empty.csv", cleaner.Report{}, nil)
	assert.True(t, strings.HasSuffix(md, "_No series to plot._\n"))
}

func TestHTMLSkipsRawMarkup(t *testing.T) {
	out := string(HTML("hello <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
}
