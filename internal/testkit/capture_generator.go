// Package testkit generates synthetic benchmark captures for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"

	"benchgraph/domain/benchmark"
)

// CaptureGeneratorConfig configures the capture generator
type CaptureGeneratorConfig struct {
	Runs         int     `json:"runs"`
	Frames       int     `json:"frames"`
	MetadataRows int     `json:"metadata_rows"`
	FrameTimeMS  float64 `json:"frame_time_ms"`
	JitterMS     float64 `json:"jitter_ms"`
	SpikeRate    float64 `json:"spike_rate"`
	SpikeFactor  float64 `json:"spike_factor"`
	BlankRate    float64 `json:"blank_rate"`
	NoiseRate    float64 `json:"noise_rate"`
	Seed         int64   `json:"seed"`
}

// DefaultCaptureConfig mimics a two-run capture at 60 fps
func DefaultCaptureConfig() CaptureGeneratorConfig {
	return CaptureGeneratorConfig{
		Runs:         2,
		Frames:       500,
		MetadataRows: 20,
		FrameTimeMS:  16.6,
		JitterMS:     0.8,
		SpikeRate:    0.01,
		SpikeFactor:  40,
		BlankRate:    0.02,
		NoiseRate:    0.02,
		Seed:         42,
	}
}

// CaptureGenerator produces capture rows: metadata, a header with units and
// one FrameTime/PresentTime pair per run on every frame row.
type CaptureGenerator struct {
	config CaptureGeneratorConfig
	rng    *rand.Rand
}

// NewCaptureGenerator creates a generator
func NewCaptureGenerator(config CaptureGeneratorConfig) *CaptureGenerator {
	return &CaptureGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Header returns the column names the generator emits
func (g *CaptureGenerator) Header() benchmark.Record {
	var h benchmark.Record
	for r := 1; r <= g.config.Runs; r++ {
		h = append(h,
			fmt.Sprintf("FrameTime run%d (ms)", r),
			fmt.Sprintf("PresentTime run%d (ms)", r))
	}
	return h
}

// Generate returns every row of the capture in file order
func (g *CaptureGenerator) Generate() []benchmark.Record {
	width := 2 * g.config.Runs
	var out []benchmark.Record

	for i := 0; i < g.config.MetadataRows; i++ {
		row := make(benchmark.Record, width)
		row[0] = fmt.Sprintf("meta%d=value%d", i, i)
		out = append(out, row)
	}
	out = append(out, g.Header())

	for f := 0; f < g.config.Frames; f++ {
		if g.rng.Float64() < g.config.BlankRate {
			out = append(out, make(benchmark.Record, width))
		}
		row := make(benchmark.Record, width)
		for r := 0; r < g.config.Runs; r++ {
			frame := g.sample()
			row[2*r] = g.noisy(frame)
			row[2*r+1] = g.noisy(frame * 0.08)
		}
		out = append(out, row)
	}
	return out
}

// Write encodes the capture with the ';' delimiter
func (g *CaptureGenerator) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	for _, rec := range g.Generate() {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (g *CaptureGenerator) sample() float64 {
	v := g.config.FrameTimeMS + g.rng.NormFloat64()*g.config.JitterMS
	if g.rng.Float64() < g.config.SpikeRate {
		v *= g.config.SpikeFactor
	}
	return math.Max(v, 0.1)
}

// noisy formats v and occasionally wraps it in the NUL and ']' debris the
// capture tool leaves behind
func (g *CaptureGenerator) noisy(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	if g.rng.Float64() < g.config.NoiseRate {
		return "\x00" + s + "]"
	}
	return s
}
