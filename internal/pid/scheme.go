package pid

// Sample is one (value, timestamp) observation of the error signal.
type Sample struct {
	Value float64
	T     float64
}

// Scheme chooses how the Integrator approximates the area contributed by
// the interval between two consecutive samples.
type Scheme interface {
	Increment(prev, cur Sample) float64
}

// Midpoint is the trapezoid rule: an interval contributes the average of
// its endpoint values times its width.
type Midpoint struct{}

func (Midpoint) Increment(prev, cur Sample) float64 {
	return 0.5 * (prev.Value + cur.Value) * (cur.T - prev.T)
}
