package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/skalas/pidlab/internal/sim"
)

// Plot renders the process variable series with a flat setpoint series
// overlaid, replacing the original's matplotlib figure.
func Plot(samples []sim.Sample, setpoint float64) string {
	pv := make([]float64, len(samples))
	sp := make([]float64, len(samples))
	for i, s := range samples {
		pv[i] = s.ProcessVariable
		sp[i] = setpoint
	}

	return asciigraph.PlotMany([][]float64{sp, pv},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("process variable vs setpoint"),
	)
}

// PlotOutput renders the controller output series.
func PlotOutput(samples []sim.Sample) string {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Output
	}

	return asciigraph.Plot(out,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("controller output"),
	)
}

// PlotError renders the setpoint error series.
func PlotError(samples []sim.Sample) string {
	errs := make([]float64, len(samples))
	for i, s := range samples {
		errs[i] = s.Error
	}

	return asciigraph.Plot(errs,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("setpoint error"),
	)
}
