package sim

import (
	"context"
	"time"

	"github.com/skalas/pidlab/internal/pid"
)

// Runner drives a controller against an actuator in a timed closed loop.
type Runner struct {
	ctrl      *pid.Controller
	actuator  Actuator
	clock     pid.Clock
	sleep     func(time.Duration)
	metrics   []Metric
	observers []Observer
}

func New(ctrl *pid.Controller, actuator Actuator) *Runner {
	return &Runner{
		ctrl:      ctrl,
		actuator:  actuator,
		clock:     pid.NewMonotonicClock(),
		sleep:     time.Sleep,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// SetClock replaces the elapsed-time source; a deterministic clock makes
// the loop replayable and lets tests run without sleeping.
func (r *Runner) SetClock(clock pid.Clock) {
	r.clock = clock
	r.sleep = func(time.Duration) {}
}

// Run loops until the duration budget elapses: read the controller,
// actuate, record, sleep one interval. The recorded series starts with a
// synthetic t=0 sample of the initial process variable before any
// control action.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	setpoint, ok := r.ctrl.Setpoint()
	if !ok {
		return nil, pid.ErrSetpointUnset
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Samples: make([]Sample, 0, 256),
		Metrics: make(map[string]float64),
	}

	pv := cfg.InitialPV
	r.record(result, Sample{T: 0, ProcessVariable: pv, Error: setpoint - pv})

	wallStart := time.Now()
	start := r.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		elapsed := r.clock.Now() - start
		if elapsed >= cfg.Duration {
			break
		}

		u, errVal, err := r.ctrl.Output(pv)
		if err != nil {
			return result, err
		}

		pv = r.actuator(pv, u)
		r.record(result, Sample{
			T:               elapsed,
			ProcessVariable: pv,
			Output:          u,
			Error:           errVal,
		})

		if cfg.Interval > 0 {
			r.sleep(time.Duration(cfg.Interval * float64(time.Second)))
		}
	}

	result.Elapsed = time.Since(wallStart)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) record(result *Result, s Sample) {
	result.Samples = append(result.Samples, s)
	for _, m := range r.metrics {
		m.Observe(s)
	}
	for _, o := range r.observers {
		o.OnStep(s)
	}
}
