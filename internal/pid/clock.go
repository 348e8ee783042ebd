package pid

import "time"

// Clock supplies timestamps, in seconds, for the controller's
// accumulators.
type Clock interface {
	Now() float64
}

// monotonicClock measures elapsed seconds since construction. time.Since
// uses the monotonic reading of the start time, so wall-clock adjustments
// during a run cannot move timestamps backwards.
type monotonicClock struct {
	start time.Time
}

func NewMonotonicClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// StepClock advances by a fixed step on every reading. Deterministic
// stand-in for wall-clock time in tests and replayable runs.
type StepClock struct {
	Step float64
	t    float64
}

func NewStepClock(start, step float64) *StepClock {
	return &StepClock{Step: step, t: start}
}

func (c *StepClock) Now() float64 {
	t := c.t
	c.t += c.Step
	return t
}
