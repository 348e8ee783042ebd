package pid

// Differentiator estimates the instantaneous rate of change of a signal
// as the secant slope through its two most recent samples.
type Differentiator struct {
	prev  Sample
	first bool
}

func NewDifferentiator(initial float64) *Differentiator {
	return &Differentiator{
		prev:  Sample{Value: initial},
		first: true,
	}
}

// Compute returns the slope between the previous observation and this
// one, then stores the observation. The first call returns the initial
// value handed to NewDifferentiator, not the new observation: with a
// single sample no rate exists, so the cold start reports the baseline.
// A zero-width interval is not guarded; the division produces ±Inf or
// NaN per IEEE-754 and is returned as-is.
func (d *Differentiator) Compute(v, t float64) float64 {
	cur := Sample{Value: v, T: t}
	if d.first {
		d.first = false
		out := d.prev.Value
		d.prev = cur
		return out
	}
	slope := (v - d.prev.Value) / (t - d.prev.T)
	d.prev = cur
	return slope
}
