package cleaner

import (
	"math"
	"strings"

	"benchgraph/domain/benchmark"

	"github.com/montanaflynn/stats"
)

// ColumnStats holds the pre-filter statistics of one numeric column
type ColumnStats struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Outliers int     `json:"outliers"`
}

// ZScore returns |v-mean|/stddev, or 0 when the column has no spread
func (s ColumnStats) ZScore(v float64) float64 {
	if s.StdDev == 0 || math.IsNaN(s.StdDev) {
		return 0
	}
	return math.Abs(v-s.Mean) / s.StdDev
}

// numericColumn collects the parsed values of column col below the header.
// It returns ok=false when any non-blank cell is not a number.
func numericColumn(recs []benchmark.Record, header, col int) (values []float64, rows []int, ok bool) {
	for i := header + 1; i < len(recs); i++ {
		row := recs[i]
		if col >= len(row) || strings.TrimSpace(row[col]) == "" {
			continue
		}
		v, parsed := benchmark.ParseFloat(row[col])
		if !parsed {
			return nil, nil, false
		}
		values = append(values, v)
		rows = append(rows, i)
	}
	return values, rows, len(values) > 0
}

func columnStats(name string, values []float64) (ColumnStats, error) {
	cs := ColumnStats{Name: name, Count: len(values)}
	mean, err := stats.Mean(values)
	if err != nil {
		return cs, err
	}
	cs.Mean = mean
	if len(values) < 2 {
		return cs, nil
	}
	sd, err := stats.StandardDeviationSample(values)
	if err != nil {
		return cs, err
	}
	cs.StdDev = sd
	return cs, nil
}

// removeOutliers applies z-score filtering to every numeric column. The first
// non-blank record is the header and never participates.
func (c *Cleaner) removeOutliers(recs []benchmark.Record, rep *Report) []benchmark.Record {
	header := -1
	for i, r := range recs {
		if !r.IsBlank() {
			header = i
			break
		}
	}
	if header < 0 {
		return recs
	}

	threshold := c.opts.Outliers.Threshold
	flagged := make(map[int][]int)
	for col, name := range recs[header] {
		values, rows, ok := numericColumn(recs, header, col)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		cs, err := columnStats(name, values)
		if err != nil {
			c.logger.Debug("skipping column %q: %v", name, err)
			continue
		}
		for k, v := range values {
			if cs.ZScore(v) > threshold {
				flagged[rows[k]] = append(flagged[rows[k]], col)
				cs.Outliers++
			}
		}
		if cs.Outliers > 0 {
			rep.OutlierCells[name] += cs.Outliers
			c.logger.Debug("column %q: %d outliers (mean=%.3f sd=%.3f z>%.2f)", name, cs.Outliers, cs.Mean, cs.StdDev, threshold)
		}
		rep.Columns = append(rep.Columns, cs)
	}
	if len(flagged) == 0 {
		return recs
	}

	out := make([]benchmark.Record, 0, len(recs))
	for i, r := range recs {
		cols, hit := flagged[i]
		if !hit {
			out = append(out, r)
			continue
		}
		if c.opts.Outliers.Policy == PolicyGap {
			gapped := append(benchmark.Record(nil), r...)
			for _, col := range cols {
				gapped[col] = ""
			}
			out = append(out, gapped)
			continue
		}
		rep.OutlierRowsDropped++
	}
	return out
}
