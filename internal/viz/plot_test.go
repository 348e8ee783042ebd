package viz

import (
	"strings"
	"testing"

	"github.com/skalas/pidlab/internal/sim"
)

func rampSamples(n int) []sim.Sample {
	samples := make([]sim.Sample, n)
	for i := range samples {
		samples[i] = sim.Sample{
			T:               float64(i) * 0.1,
			ProcessVariable: float64(i) * 0.05,
			Output:          1.0 / float64(i+1),
			Error:           1.0 - float64(i)*0.05,
		}
	}
	return samples
}

func TestPlot(t *testing.T) {
	out := Plot(rampSamples(50), 1.0)

	if out == "" {
		t.Fatal("expected non-empty chart")
	}
	if !strings.Contains(out, "process variable vs setpoint") {
		t.Error("caption missing")
	}
}

func TestPlotOutputAndError(t *testing.T) {
	samples := rampSamples(50)

	if !strings.Contains(PlotOutput(samples), "controller output") {
		t.Error("output caption missing")
	}
	if !strings.Contains(PlotError(samples), "setpoint error") {
		t.Error("error caption missing")
	}
}
