package metrics

import (
	"math"

	"github.com/skalas/pidlab/internal/sim"
)

// SteadyStateError reports the mean absolute setpoint error over the
// trailing fraction of a run, once transients have had time to die out.
type SteadyStateError struct {
	name string
	tail float64
	errs []float64
}

// NewSteadyStateError averages over the last tail fraction of samples;
// tail outside (0, 1] falls back to the final 20%.
func NewSteadyStateError(tail float64) *SteadyStateError {
	if tail <= 0 || tail > 1 {
		tail = 0.2
	}
	return &SteadyStateError{
		name: "steady_state_error",
		tail: tail,
		errs: make([]float64, 0),
	}
}

func (e *SteadyStateError) Name() string {
	return e.name
}

func (e *SteadyStateError) Observe(s sim.Sample) {
	e.errs = append(e.errs, math.Abs(s.Error))
}

func (e *SteadyStateError) Value() float64 {
	if len(e.errs) == 0 {
		return 0
	}

	start := len(e.errs) - int(float64(len(e.errs))*e.tail)
	if start >= len(e.errs) {
		start = len(e.errs) - 1
	}

	sum := 0.0
	for _, v := range e.errs[start:] {
		sum += v
	}
	return sum / float64(len(e.errs)-start)
}

func (e *SteadyStateError) Reset() {
	e.errs = e.errs[:0]
}
