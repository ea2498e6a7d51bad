package benchmark

// Point is one plotted sample; Index is the row position in the cleaned table
type Point struct {
	Index int     `json:"x"`
	Value float64 `json:"y"`
}

// Series is one named, colored, independently hideable line
type Series struct {
	ID      int     `json:"id"`
	Column  string  `json:"column"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Points  []Point `json:"points"`
	Visible bool    `json:"visible"`
}

// Values returns the y values of the series in order
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}
