package cleaner

import (
	"encoding/csv"
	"io"
	"strings"
	"testing"

	"benchgraph/domain/benchmark"
	"benchgraph/internal"
	"benchgraph/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) []benchmark.Record {
	t.Helper()
	r := csv.NewReader(strings.NewReader(raw))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	var out []benchmark.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, benchmark.Record(rec))
	}
	return out
}

func newCleaner(t *testing.T, opts Options) *Cleaner {
	t.Helper()
	c, err := New(opts, internal.NewLoggerTo(io.Discard, internal.LogLevelError))
	require.NoError(t, err)
	return c
}

func column(records []benchmark.Record, col int) []string {
	var out []string
	for _, r := range records[1:] {
		out = append(out, r[col])
	}
	return out
}

func TestCleanSanitizesAndDropsBlankRows(t *testing.T) {
	records := parse(t, "A;B\n1;2\n\x00]3;4\n;\n5;6\n")

	res := newCleaner(t, DefaultOptions()).Clean(records)

	assert.Equal(t, []benchmark.Record{{"A", "B"}, {"1", "2"}, {"3", "4"}, {"5", "6"}}, res.Records)
	assert.Equal(t, 1, res.Report.BlankRowsDropped)
	assert.Equal(t, 3, res.Table.Len())
	assert.Equal(t, []string{"A", "B"}, res.Table.Columns)
}

func TestCleanNeverLeavesDisallowedCharacters(t *testing.T) {
	records := []benchmark.Record{
		{"Frame]Time (ms)", "Present\x00Time (ms)"},
		{"16.6]", "\x00\x0015.2"},
		{"]]]", "\x00"},
		{"17.1", "]15.0]"},
	}

	res := newCleaner(t, DefaultOptions()).Clean(records)

	for _, r := range res.Records {
		for _, cell := range r {
			assert.NotContains(t, cell, "\x00")
			assert.NotContains(t, cell, "]")
		}
	}
	assert.Equal(t, 1, res.Report.BlankRowsDropped, "a row of only NUL and ']' is blank after sanitizing")
	assert.Equal(t, []string{"FrameTime (ms)", "PresentTime (ms)"}, res.Table.Columns)
}

func TestCleanKeepsPartiallyBlankRowsInOrder(t *testing.T) {
	records := []benchmark.Record{
		{"A", "B", "C"},
		{"1", "", ""},
		{"  ", "\t", ""},
		{"", "", "9"},
		{"4"},
	}

	res := newCleaner(t, DefaultOptions()).Clean(records)

	assert.Equal(t, []benchmark.Record{{"A", "B", "C"}, {"1", "", ""}, {"", "", "9"}, {"4"}}, res.Records)
	c, _ := res.Table.Column("C")
	assert.Equal(t, []string{"", "9", ""}, c)
}

func TestCleanIsIdempotent(t *testing.T) {
	records := parse(t, "meta\nA;B;C\n1;2;3\n\x00;]\n;;\n4;;6]\n7;8\n")
	c := newCleaner(t, DefaultOptions())

	first := c.Clean(records)
	second := c.Clean(first.Records)

	assert.Equal(t, first.Records, second.Records)
	assert.Zero(t, second.Report.BlankRowsDropped)
}

func TestCleanDoesNotMutateInput(t *testing.T) {
	records := []benchmark.Record{{"A"}, {"1]"}, {""}}
	newCleaner(t, DefaultOptions()).Clean(records)
	assert.Equal(t, []benchmark.Record{{"A"}, {"1]"}, {""}}, records)
}

func TestCleanSkipRows(t *testing.T) {
	records := []benchmark.Record{
		{"A", "B"},
		{"1", "1"},
		{"2", "2"},
		{"3", "3"},
		{"4", "4"},
	}
	opts := DefaultOptions()
	opts.SkipRows = 2

	res := newCleaner(t, opts).Clean(records)

	assert.Equal(t, 2, res.Report.RowsSkipped)
	assert.Equal(t, 2, res.Table.Len(), "the first remaining row becomes the header")
	assert.Equal(t, []benchmark.Record{{"2", "2"}, {"3", "3"}, {"4", "4"}}, res.Records)
	assert.Equal(t, []string{"3", "4"}, res.Table.ColumnAt(0))
}

func TestCleanSkipRowsBeforeSanitizing(t *testing.T) {
	records := []benchmark.Record{{""}, {""}, {"A"}, {"1"}}
	opts := DefaultOptions()
	opts.SkipRows = 1

	res := newCleaner(t, opts).Clean(records)

	assert.Equal(t, 1, res.Report.RowsSkipped)
	assert.Equal(t, 1, res.Report.BlankRowsDropped)
	assert.Equal(t, []benchmark.Record{{"A"}, {"1"}}, res.Records)
}

func TestCleanSkipMoreThanAvailable(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipRows = 20

	res := newCleaner(t, opts).Clean([]benchmark.Record{{"A"}, {"1"}})

	assert.True(t, res.Report.Empty())
	assert.Empty(t, res.Records)
	assert.Equal(t, 0, res.Table.Width())
}

func outlierOpts(threshold float64, policy OutlierPolicy) Options {
	opts := DefaultOptions()
	opts.Outliers = OutlierOptions{Enabled: true, Threshold: threshold, Policy: policy}
	return opts
}

func TestOutlierGapPolicy(t *testing.T) {
	records := []benchmark.Record{{"v"}, {"1"}, {"2"}, {"3"}, {"1000"}}

	res := newCleaner(t, outlierOpts(1.0, PolicyGap)).Clean(records)

	assert.Equal(t, []string{"1", "2", "3", ""}, column(res.Records, 0))
	assert.Equal(t, 1, res.Report.OutlierCells["v"])
	assert.Zero(t, res.Report.OutlierRowsDropped)

	var kept []float64
	for i := 0; i < res.Table.Len(); i++ {
		if v, ok := res.Table.Float(0, i); ok {
			kept = append(kept, v)
		}
	}
	assert.Equal(t, []float64{1, 2, 3}, kept)
}

func TestOutlierRowPolicyKeepsColumnsAligned(t *testing.T) {
	records := []benchmark.Record{
		{"FrameTime (ms)", "PresentTime (ms)"},
		{"1", "10"},
		{"2", "10"},
		{"3", "10"},
		{"1000", "10"},
	}

	res := newCleaner(t, outlierOpts(1.0, PolicyRow)).Clean(records)

	assert.Equal(t, []string{"1", "2", "3"}, column(res.Records, 0))
	assert.Equal(t, []string{"10", "10", "10"}, column(res.Records, 1))
	assert.Equal(t, 1, res.Report.OutlierRowsDropped)
	assert.Equal(t, 3, res.Table.Len())
}

func TestOutliersNeverExceedThreshold(t *testing.T) {
	records := []benchmark.Record{{"a", "b"}}
	for i := 0; i < 200; i++ {
		a := "16.6"
		if i%50 == 7 {
			a = "400"
		}
		b := "15"
		if i%2 == 0 {
			b = "14"
		}
		records = append(records, benchmark.Record{a, b})
	}
	const threshold = 3.0

	res := newCleaner(t, outlierOpts(threshold, PolicyGap)).Clean(records)

	require.Len(t, res.Report.Columns, 2)
	for col, cs := range res.Report.Columns {
		for row := 0; row < res.Table.Len(); row++ {
			v, ok := res.Table.Float(col, row)
			if !ok {
				continue
			}
			assert.LessOrEqual(t, cs.ZScore(v), threshold, "column %s row %d", cs.Name, row)
		}
	}
	assert.Equal(t, 4, res.Report.OutlierCells["a"])
	assert.Zero(t, res.Report.OutlierCells["b"])
}

func TestOutliersIgnoreTextColumnsAndFlatColumns(t *testing.T) {
	records := []benchmark.Record{
		{"Name", "Flat", "Value"},
		{"run1", "5", "1"},
		{"run2", "5", "1"},
		{"run3", "5", "1"},
	}

	res := newCleaner(t, outlierOpts(0.1, PolicyRow)).Clean(records)

	assert.Equal(t, records, res.Records)
	assert.Zero(t, res.Report.TotalOutliers())
}

func TestOutlierDefaultThresholdIsPermissive(t *testing.T) {
	records := []benchmark.Record{{"FrameTime (ms)"}}
	for i := 0; i < 100; i++ {
		records = append(records, benchmark.Record{"16"})
		records = append(records, benchmark.Record{"17"})
	}
	records = append(records, benchmark.Record{"20"})

	opts := DefaultOptions()
	opts.Outliers.Enabled = true
	res := newCleaner(t, opts).Clean(records)

	assert.Zero(t, res.Report.TotalOutliers(), "normal variance must survive the default threshold")
}

func TestStepOrderOutliersFirstDropsGappedBlankRows(t *testing.T) {
	records := []benchmark.Record{{"v"}, {"1"}, {"2"}, {"3"}, {"1000"}}
	opts := outlierOpts(1.0, PolicyGap)
	opts.Order = OrderOutliersFirst

	res := newCleaner(t, opts).Clean(records)

	assert.Equal(t, []benchmark.Record{{"v"}, {"1"}, {"2"}, {"3"}}, res.Records)
	assert.Equal(t, 1, res.Report.BlankRowsDropped)
}

func TestStepOrderFilterFirstKeepsGappedRows(t *testing.T) {
	records := []benchmark.Record{{"v"}, {"1"}, {"2"}, {"3"}, {"1000"}}

	res := newCleaner(t, outlierOpts(1.0, PolicyGap)).Clean(records)

	assert.Len(t, res.Records, 5)
	assert.Zero(t, res.Report.BlankRowsDropped)
}

func TestStepOrderOutliersFirstFindsHeaderAfterBlankRows(t *testing.T) {
	records := []benchmark.Record{{""}, {"v"}, {"1"}, {"2"}, {"3"}, {"1000"}}
	opts := outlierOpts(1.0, PolicyRow)
	opts.Order = OrderOutliersFirst

	res := newCleaner(t, opts).Clean(records)

	assert.Equal(t, []benchmark.Record{{"v"}, {"1"}, {"2"}, {"3"}}, res.Records)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"negative skip", func(o *Options) { o.SkipRows = -1 }, true},
		{"zero threshold enabled", func(o *Options) { o.Outliers.Enabled = true; o.Outliers.Threshold = 0 }, true},
		{"zero threshold disabled", func(o *Options) { o.Outliers.Threshold = 0 }, false},
		{"bad policy", func(o *Options) { o.Outliers.Policy = "drop" }, true},
		{"bad order", func(o *Options) { o.Order = "sideways" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := New(opts, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParsePolicyAndOrder(t *testing.T) {
	p, err := ParsePolicy("GAP")
	require.NoError(t, err)
	assert.Equal(t, PolicyGap, p)

	o, err := ParseOrder("outliers-first")
	require.NoError(t, err)
	assert.Equal(t, OrderOutliersFirst, o)

	_, err = ParseOrder("nope")
	assert.Error(t, err)
}

func TestCleanGeneratedCapture(t *testing.T) {
	cfg := testkit.DefaultCaptureConfig()
	cfg.Runs = 3
	cfg.Frames = 2000
	gen := testkit.NewCaptureGenerator(cfg)

	opts := outlierOpts(4, PolicyGap)
	opts.SkipRows = cfg.MetadataRows
	res := newCleaner(t, opts).Clean(gen.Generate())

	assert.Equal(t, []string(gen.Header()), res.Table.Columns)
	require.Len(t, res.Report.Columns, 2*cfg.Runs)
	assert.Positive(t, res.Report.TotalOutliers())

	for col, cs := range res.Report.Columns {
		for row := 0; row < res.Table.Len(); row++ {
			v, ok := res.Table.Float(col, row)
			if !ok {
				continue
			}
			assert.LessOrEqual(t, cs.ZScore(v), 4.0, "column %s row %d", cs.Name, row)
		}
	}
	for _, rec := range res.Records {
		for _, cell := range rec {
			assert.NotContains(t, cell, "\x00")
			assert.NotContains(t, cell, "]")
		}
	}
}

func TestCleanLogsTruncatedRows(t *testing.T) {
	var buf strings.Builder
	c, err := New(DefaultOptions(), internal.NewLoggerTo(&buf, internal.LogLevelDebug))
	require.NoError(t, err)

	res := c.Clean(parse(t, "A;B\n1;2;9\n3;4\n"))

	assert.Equal(t, 1, res.Report.MalformedRows)
	assert.Contains(t, buf.String(), "row 1: 3 fields for 2 columns, truncated")
}

func TestCleanSkipRowsCountsEmptyRecords(t *testing.T) {
	opts := DefaultOptions()
	opts.SkipRows = 3
	records := []benchmark.Record{{"meta1"}, {}, {"meta2"}, {"A", "B"}, {"1", "2"}, {}, {"3", "4"}}

	res := newCleaner(t, opts).Clean(records)

	assert.Equal(t, []string{"A", "B"}, res.Table.Columns)
	assert.Equal(t, 2, res.Table.Len())
	assert.Equal(t, 1, res.Report.BlankRowsDropped)
}
