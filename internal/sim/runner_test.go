package sim

import (
	"context"
	"testing"

	"github.com/skalas/pidlab/internal/pid"
)

func newTestController(t *testing.T, p, i, d float64) *pid.Controller {
	t.Helper()
	ctrl, err := pid.New(p, i, d,
		pid.WithSetpoint(1.0),
		pid.WithClock(pid.NewStepClock(0, 0.1)),
	)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return ctrl
}

func TestRunnerRun(t *testing.T) {
	ctrl := newTestController(t, 10, 0, 0)
	r := New(ctrl, Integrating(0))
	r.SetClock(pid.NewStepClock(0, 0.1))

	cfg := Config{InitialPV: 0.0, Duration: 1.0}
	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Seed sample plus nine loop iterations before elapsed hits 1.0.
	if len(result.Samples) != 10 {
		t.Errorf("expected 10 samples, got %d", len(result.Samples))
	}

	first := result.Samples[0]
	if first.T != 0 || first.Output != 0 {
		t.Errorf("unexpected seed sample: %+v", first)
	}
	if first.Error != 1.0 {
		t.Errorf("seed error should be setpoint - pv0 = 1.0, got %f", first.Error)
	}

	for i := 1; i < len(result.Samples); i++ {
		if result.Samples[i].T <= result.Samples[i-1].T {
			t.Errorf("sample times not increasing at index %d", i)
		}
	}

	// A pure P loop on an integrating plant moves the PV toward the
	// setpoint.
	last := result.Samples[len(result.Samples)-1]
	if last.ProcessVariable <= first.ProcessVariable {
		t.Errorf("process variable did not move toward setpoint: %f", last.ProcessVariable)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	ctrl := newTestController(t, 10, 0, 0)
	r := New(ctrl, Integrating(0))
	r.SetClock(pid.NewStepClock(0, 0.1))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero duration", Config{Duration: 0}},
		{"negative duration", Config{Duration: -1}},
		{"negative interval", Config{Duration: 1, Interval: -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerUnsetSetpoint(t *testing.T) {
	ctrl, err := pid.New(10, 0, 0, pid.WithClock(pid.NewStepClock(0, 0.1)))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	r := New(ctrl, Integrating(0))
	r.SetClock(pid.NewStepClock(0, 0.1))

	if _, err := r.Run(context.Background(), Config{Duration: 1.0}); err == nil {
		t.Error("expected setpoint error, got nil")
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctrl := newTestController(t, 10, 0, 0)
	r := New(ctrl, Integrating(0))
	r.SetClock(pid.NewStepClock(0, 1e-9))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := r.Run(ctx, Config{Duration: 1.0})
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(result.Samples) != 1 {
		t.Errorf("expected only the seed sample, got %d", len(result.Samples))
	}
}

type countingMetric struct {
	count int
	sum   float64
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(s Sample) {
	m.count++
	m.sum += s.ProcessVariable
}
func (m *countingMetric) Value() float64 { return float64(m.count) }
func (m *countingMetric) Reset()         { m.count = 0; m.sum = 0 }

type recordingObserver struct {
	samples []Sample
}

func (o *recordingObserver) OnStep(s Sample) { o.samples = append(o.samples, s) }

func TestRunnerMetricsAndObservers(t *testing.T) {
	ctrl := newTestController(t, 10, 0, 0)
	r := New(ctrl, Integrating(0))
	r.SetClock(pid.NewStepClock(0, 0.25))

	metric := &countingMetric{count: 99}
	obs := &recordingObserver{}
	r.AddMetric(metric)
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), Config{Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Reset before the run, then one observation per recorded sample.
	if metric.count != len(result.Samples) {
		t.Errorf("metric observed %d samples, recorded %d", metric.count, len(result.Samples))
	}
	if len(obs.samples) != len(result.Samples) {
		t.Errorf("observer saw %d samples, recorded %d", len(obs.samples), len(result.Samples))
	}

	val, ok := result.Metrics["count"]
	if !ok {
		t.Fatal("metric missing from result")
	}
	if int(val) != len(result.Samples) {
		t.Errorf("metric value %v, want %d", val, len(result.Samples))
	}
}

func TestGetActuator(t *testing.T) {
	for _, name := range []string{"noisy", "integrating", "lag"} {
		act, err := GetActuator(name, 42)
		if err != nil {
			t.Errorf("GetActuator(%s): %v", name, err)
		}
		if act == nil {
			t.Errorf("GetActuator(%s): nil actuator", name)
		}
	}

	if _, err := GetActuator("bogus", 0); err == nil {
		t.Error("expected error for unknown actuator")
	}
}

func TestNoisyReproducible(t *testing.T) {
	a := Noisy(7)
	b := Noisy(7)

	pvA, pvB := 0.0, 0.0
	for i := 0; i < 10; i++ {
		pvA = a(pvA, 5.0)
		pvB = b(pvB, 5.0)
	}

	if pvA != pvB {
		t.Errorf("same seed diverged: %v vs %v", pvA, pvB)
	}

	c := Noisy(8)
	pvC := 0.0
	for i := 0; i < 10; i++ {
		pvC = c(pvC, 5.0)
	}
	if pvA == pvC {
		t.Error("different seeds produced identical trajectories")
	}
}

func TestLagConverges(t *testing.T) {
	act := Lag(0)

	pv := 0.0
	for i := 0; i < 200; i++ {
		pv = act(pv, 1.0)
	}

	if pv < 0.99 || pv > 1.01 {
		t.Errorf("lag plant should settle at the held output, got %f", pv)
	}
}
