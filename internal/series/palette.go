package series

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Category10 is the ten-color categorical palette used for every chart
var Category10 = [10]string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// ColorAt returns the palette color for the i-th column, cycling every ten
func ColorAt(i int) string {
	n := len(Category10)
	return Category10[((i%n)+n)%n]
}

// ParseHex converts "#rrggbb" into an RGBA color with the given alpha (0..1)
func ParseHex(hex string, alpha float64) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(alpha*255 + 0.5),
	}, nil
}
