package benchmark

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat parses a sample cell. Both "12.5" and the comma-decimal
// "12,5" emitted by some capture locales are accepted; NaN and infinities are
// rejected so they never reach a series or the outlier statistics.
func ParseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
