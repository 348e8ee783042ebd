package sim

import (
	"fmt"
	"time"
)

// Sample is one record of the closed loop: elapsed time, the process
// variable after actuation, the controller output that produced it, and
// the setpoint error seen by the controller.
type Sample struct {
	T               float64 `json:"t"`
	ProcessVariable float64 `json:"pv"`
	Output          float64 `json:"output"`
	Error           float64 `json:"error"`
}

// Actuator maps the current process variable and a controller output to
// the next process variable. It models the plant under control.
type Actuator func(pv, u float64) float64

// Metric aggregates a summary statistic over the samples of one run.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observer is notified of every recorded sample.
type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	InitialPV float64
	Duration  float64
	Interval  float64
}

type Result struct {
	Samples []Sample
	Metrics map[string]float64
	Elapsed time.Duration
}

func validateConfig(cfg Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Interval < 0 {
		return fmt.Errorf("sim: interval must be non-negative, got %f", cfg.Interval)
	}
	return nil
}
