package pid

// Integrator keeps a running integral of a signal sampled at irregular
// timestamps. Timestamps are expected to be non-decreasing across calls;
// equal timestamps contribute a zero-width interval and leave the total
// unchanged.
type Integrator struct {
	total  float64
	scheme Scheme
	prev   Sample
	first  bool
}

func NewIntegrator(initial float64, scheme Scheme) *Integrator {
	return &Integrator{
		total:  initial,
		scheme: scheme,
		first:  true,
	}
}

// Compute folds one observation into the running total and returns it.
// The first observation only establishes the baseline sample and returns
// the initial total unchanged.
func (in *Integrator) Compute(v, t float64) float64 {
	cur := Sample{Value: v, T: t}
	if in.first {
		in.first = false
	} else {
		in.total += in.scheme.Increment(in.prev, cur)
	}
	in.prev = cur
	return in.total
}
