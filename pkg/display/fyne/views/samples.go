package views

import "gonum.org/v1/plot/plotter"

// samples is a fixed size ring of the most recent values of a metric.
type samples struct {
	values []float64
	next   int
	full   bool
}

func newSamples(n int) *samples {
	return &samples{values: make([]float64, n)}
}

func (s *samples) add(v float64) {
	s.values[s.next] = v
	s.next = (s.next + 1) % len(s.values)
	if s.next == 0 {
		s.full = true
	}
}

func (s *samples) len() int {
	if s.full {
		return len(s.values)
	}
	return s.next
}

// xys returns the samples oldest first, numbered from 0.
func (s *samples) xys() plotter.XYs {
	n := s.len()
	out := make(plotter.XYs, n)
	start := 0
	if s.full {
		start = s.next
	}
	for i := 0; i < n; i++ {
		out[i].X = float64(i)
		out[i].Y = s.values[(start+i)%len(s.values)]
	}
	return out
}

func (s *samples) mean() float64 {
	n := s.len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.values[i]
	}
	return sum / float64(n)
}
