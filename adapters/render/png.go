package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"benchgraph/domain/benchmark"
	"benchgraph/domain/chart"
	"benchgraph/internal/series"
)

// CSS basic color keywords
var namedColors = map[string]color.NRGBA{
	"black":   {A: 255},
	"silver":  {R: 192, G: 192, B: 192, A: 255},
	"gray":    {R: 128, G: 128, B: 128, A: 255},
	"grey":    {R: 128, G: 128, B: 128, A: 255},
	"white":   {R: 255, G: 255, B: 255, A: 255},
	"maroon":  {R: 128, A: 255},
	"red":     {R: 255, A: 255},
	"purple":  {R: 128, B: 128, A: 255},
	"fuchsia": {R: 255, B: 255, A: 255},
	"green":   {G: 128, A: 255},
	"lime":    {G: 255, A: 255},
	"olive":   {R: 128, G: 128, A: 255},
	"yellow":  {R: 255, G: 255, A: 255},
	"navy":    {B: 128, A: 255},
	"blue":    {B: 255, A: 255},
	"teal":    {G: 128, B: 128, A: 255},
	"aqua":    {G: 255, B: 255, A: 255},
	"orange":  {R: 255, G: 165, A: 255},
}

// ParseColor accepts a CSS basic color keyword or "#rrggbb". Both the HTML
// and the PNG chart can draw any color it accepts.
func ParseColor(s string) (color.NRGBA, error) {
	if c, ok := namedColors[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return series.ParseHex(s, 1)
}

// PNGRenderer draws the first figure of a context as a static image.
// Hidden series are left out, since a raster has no toggles.
type PNGRenderer struct{}

// NewPNGRenderer returns a PNG renderer
func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{}
}

// Render writes the first root of ctx as PNG
func (r *PNGRenderer) Render(w io.Writer, ctx *chart.Context) error {
	roots := ctx.Roots()
	if len(roots) == 0 {
		return fmt.Errorf("render png: no figure")
	}
	fig := roots[0]

	p, err := newPlot(fig.Style)
	if err != nil {
		return err
	}
	if err := addSeries(p, fig.Style, fig.VisibleSeries()); err != nil {
		return err
	}

	// 96 dpi so the pixel size matches the interactive chart
	width := vg.Length(fig.Style.Width) * vg.Inch / 96
	height := vg.Length(fig.Style.Height) * vg.Inch / 96
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func newPlot(style chart.Style) (*plot.Plot, error) {
	bg, err := ParseColor(style.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	fg, err := ParseColor(style.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}

	p := plot.New()
	p.BackgroundColor = bg
	p.Title.Text = style.Title
	p.Title.TextStyle.Color = fg
	p.X.Label.Text = style.XLabel
	p.Y.Label.Text = style.YLabel
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Color = fg
		axis.Label.TextStyle.Color = fg
		axis.Tick.Color = fg
		axis.Tick.Label.Color = fg
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = fg
	p.Legend.Padding = 1 * vg.Millimeter
	return p, nil
}

func addSeries(p *plot.Plot, style chart.Style, visible []benchmark.Series) error {
	for _, s := range visible {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = float64(pt.Index)
			xys[i].Y = pt.Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		c, err := series.ParseHex(s.Color, style.LineAlpha)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		line.Color = c
		line.Width = vg.Points(style.LineWidth)
		p.Add(line)
		p.Legend.Add(s.Label, line)
	}
	return nil
}
