package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
)

//go:embed templates/*.html
var templateFiles embed.FS

// figurePayload is the JSON handed to the page script for one figure
type figurePayload struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	XLabel      string             `json:"xLabel"`
	YLabel      string             `json:"yLabel"`
	Background  string             `json:"background"`
	Foreground  string             `json:"foreground"`
	LineWidth   float64            `json:"lineWidth"`
	LineAlpha   float64            `json:"lineAlpha"`
	LegendTitle string             `json:"legendTitle"`
	SyncURL     string             `json:"syncUrl,omitempty"`
	Series      []benchmark.Series `json:"series"`
}

type figureView struct {
	Style   chart.Style
	Series  []benchmark.Series
	Summary template.HTML
	RunID   string
}

type pageView struct {
	Title   string
	Figures []figureView
	Payload []figurePayload
}

// HTMLRenderer writes a self-contained interactive page: one SVG line chart
// per figure, a clickable legend and one checkbox per series.
type HTMLRenderer struct {
	tmpl *template.Template
	// SyncURL, when set, is the base the page PUTs visibility changes to
	// (SyncURL + "<id>/visibility").
	SyncURL string
}

// NewHTMLRenderer parses the embedded chart template
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/chart.html")
	if err != nil {
		return nil, fmt.Errorf("parse chart template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// WithSync returns a copy of the renderer that reports toggles to syncURL
func (r *HTMLRenderer) WithSync(syncURL string) *HTMLRenderer {
	cp := *r
	if syncURL != "" && !strings.HasSuffix(syncURL, "/") {
		syncURL += "/"
	}
	cp.SyncURL = syncURL
	return &cp
}

// Render writes every root of ctx into a single HTML document
func (r *HTMLRenderer) Render(w io.Writer, ctx *chart.Context) error {
	view := pageView{Title: chart.DefaultStyle().Title}
	for i, fig := range ctx.Roots() {
		series := fig.Visibility.Apply(fig.Series)
		if series == nil {
			series = []benchmark.Series{}
		}
		if i == 0 && fig.Style.Title != "" {
			view.Title = fig.Style.Title
		}
		view.Figures = append(view.Figures, figureView{
			Style:   fig.Style,
			Series:  series,
			Summary: fig.Summary,
			RunID:   fig.RunID,
		})
		view.Payload = append(view.Payload, figurePayload{
			Width:       fig.Style.Width,
			Height:      fig.Style.Height,
			XLabel:      fig.Style.XLabel,
			YLabel:      fig.Style.YLabel,
			Background:  fig.Style.Background,
			Foreground:  fig.Style.Foreground,
			LineWidth:   fig.Style.LineWidth,
			LineAlpha:   fig.Style.LineAlpha,
			LegendTitle: fig.Style.LegendTitle,
			SyncURL:     r.SyncURL,
			Series:      series,
		})
	}
	if view.Payload == nil {
		view.Payload = []figurePayload{}
	}
	if err := r.tmpl.ExecuteTemplate(w, "chart.html", view); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
