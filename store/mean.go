package store

// Mean accumulates an arithmetic mean over a fixed number of fields.
type Mean struct {
	sums []float64
	n    int
}

// NewMean creates an accumulator for width fields.
func NewMean(width int) *Mean {
	return &Mean{sums: make([]float64, width)}
}

// Add adds one observation. values must have the accumulator's width.
func (m *Mean) Add(values ...float64) {
	for i, v := range values {
		m.sums[i] += v
	}
	m.n++
}

// N returns the number of observations.
func (m *Mean) N() int {
	return m.n
}

// Values returns the per-field means, or zeros when nothing was added.
func (m *Mean) Values() []float64 {
	out := make([]float64, len(m.sums))
	if m.n == 0 {
		return out
	}
	for i, s := range m.sums {
		out[i] = s / float64(m.n)
	}

	return out
}
