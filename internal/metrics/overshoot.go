package metrics

import "github.com/skalas/pidlab/internal/sim"

// Overshoot tracks the largest excursion of the process variable past
// the setpoint, in the direction the loop approaches it from. The first
// observed sample fixes the approach direction.
type Overshoot struct {
	name      string
	setpoint  float64
	fromBelow bool
	first     bool
	max       float64
}

func NewOvershoot(setpoint float64) *Overshoot {
	return &Overshoot{
		name:     "overshoot",
		setpoint: setpoint,
		first:    true,
	}
}

func (o *Overshoot) Name() string {
	return o.name
}

func (o *Overshoot) Observe(s sim.Sample) {
	if o.first {
		o.fromBelow = s.ProcessVariable < o.setpoint
		o.first = false
	}

	excursion := s.ProcessVariable - o.setpoint
	if !o.fromBelow {
		excursion = -excursion
	}
	if excursion > o.max {
		o.max = excursion
	}
}

func (o *Overshoot) Value() float64 {
	return o.max
}

func (o *Overshoot) Reset() {
	o.first = true
	o.max = 0
}
