package cleaner

import (
	"fmt"
	"strings"

	"benchgraph/internal/errors"
)

// OutlierPolicy decides what happens to a row holding an outlier
type OutlierPolicy string

const (
	// PolicyRow drops the whole row from every column so series stay aligned
	PolicyRow OutlierPolicy = "row"
	// PolicyGap blanks only the offending cell and keeps the row
	PolicyGap OutlierPolicy = "gap"
)

// Order decides whether blank-row filtering runs before or after outlier removal
type Order string

const (
	OrderFilterFirst   Order = "filter-first"
	OrderOutliersFirst Order = "outliers-first"
)

// DefaultThreshold only catches gross capture glitches, not normal frame variance
const DefaultThreshold = 10.0

// OutlierOptions configures z-score filtering of numeric columns
type OutlierOptions struct {
	Enabled   bool
	Threshold float64
	Policy    OutlierPolicy
}

// Options configures one cleaning pass
type Options struct {
	SkipRows int
	Outliers OutlierOptions
	Order    Order
}

// DefaultOptions returns options that sanitize and drop blank rows only
func DefaultOptions() Options {
	return Options{
		Outliers: OutlierOptions{
			Threshold: DefaultThreshold,
			Policy:    PolicyRow,
		},
		Order: OrderFilterFirst,
	}
}

// Validate checks the option ranges
func (o Options) Validate() error {
	if o.SkipRows < 0 {
		return errors.InvalidInput(fmt.Sprintf("skip rows must be >= 0, got %d", o.SkipRows))
	}
	if o.Outliers.Enabled && !(o.Outliers.Threshold > 0) {
		return errors.InvalidInput(fmt.Sprintf("outlier threshold must be > 0, got %v", o.Outliers.Threshold))
	}
	if _, err := ParsePolicy(string(o.Outliers.Policy)); err != nil {
		return err
	}
	if _, err := ParseOrder(string(o.Order)); err != nil {
		return err
	}
	return nil
}

// ParsePolicy accepts "row" or "gap"; an empty string selects row
func ParsePolicy(s string) (OutlierPolicy, error) {
	switch OutlierPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyRow:
		return PolicyRow, nil
	case PolicyGap:
		return PolicyGap, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown outlier policy %q (want row or gap)", s))
}

// ParseOrder accepts "filter-first" or "outliers-first"; an empty string selects filter-first
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderFilterFirst:
		return OrderFilterFirst, nil
	case OrderOutliersFirst:
		return OrderOutliersFirst, nil
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown step order %q (want filter-first or outliers-first)", s))
}
