// Package report summarizes a cleaning run for people: per-series sample
// statistics plus a short markdown document embedded in the chart.
package report

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"benchgraph/domain/benchmark"
	"benchgraph/internal/cleaner"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes count, mean, extremes and percentiles for each series.
// Series without points get a zero summary.
func Summarize(series []benchmark.Series) []benchmark.SeriesSummary {
	out := make([]benchmark.SeriesSummary, 0, len(series))
	for _, s := range series {
		sum := benchmark.SeriesSummary{Label: s.Label, Count: len(s.Points)}
		if sum.Count > 0 {
			values := s.Values()
			sort.Float64s(values)
			sum.Mean = stat.Mean(values, nil)
			sum.Min = values[0]
			sum.Max = values[len(values)-1]
			sum.P50 = stat.Quantile(0.50, stat.Empirical, values, nil)
			sum.P95 = stat.Quantile(0.95, stat.Empirical, values, nil)
			sum.P99 = stat.Quantile(0.99, stat.Empirical, values, nil)
		}
		out = append(out, sum)
	}
	return out
}

// Markdown renders the cleaning report and series summaries as a markdown document
func Markdown(input string, rep cleaner.Report, summaries []benchmark.SeriesSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Run summary\n\n")
	fmt.Fprintf(&b, "Source: `%s`\n\n", input)
	fmt.Fprintf(&b, "- rows read: %d\n", rep.RowsRead)
	fmt.Fprintf(&b, "- rows skipped: %d\n", rep.RowsSkipped)
	fmt.Fprintf(&b, "- blank rows dropped: %d\n", rep.BlankRowsDropped)
	fmt.Fprintf(&b, "- outlier rows dropped: %d\n", rep.OutlierRowsDropped)
	fmt.Fprintf(&b, "- outlier cells: %d\n", rep.TotalOutliers())
	fmt.Fprintf(&b, "- data rows kept: %d\n\n", rep.DataRows)

	if len(summaries) == 0 {
		b.WriteString("_No series to plot._\n")
		return b.String()
	}

	b.WriteString("| Series | Samples | Mean | Min | Max | p50 | p95 | p99 |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f |\n",
			escapeCell(s.Label), s.Count, s.Mean, s.Min, s.Max, s.P50, s.P95, s.P99)
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// HTML converts markdown into an HTML fragment. Raw HTML in the source is
// skipped, so column names from the capture cannot inject markup.
func HTML(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.Render(doc, renderer))
}
