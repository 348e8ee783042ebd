package export

import (
	"fmt"
	"strings"

	"github.com/skalas/pidlab/internal/sim"
)

// SVG renders the process variable trajectory with a dashed setpoint
// line, the same figure the plot command draws in the terminal.
func SVG(samples []sim.Sample, setpoint float64, width, height int) string {
	if len(samples) < 2 {
		return ""
	}

	minT, maxT := samples[0].T, samples[len(samples)-1].T
	minPV, maxPV := samples[0].ProcessVariable, samples[0].ProcessVariable
	for _, s := range samples {
		if s.ProcessVariable < minPV {
			minPV = s.ProcessVariable
		}
		if s.ProcessVariable > maxPV {
			maxPV = s.ProcessVariable
		}
	}
	if setpoint < minPV {
		minPV = setpoint
	}
	if setpoint > maxPV {
		maxPV = setpoint
	}

	rangeT := maxT - minT
	rangePV := maxPV - minPV
	if rangeT == 0 {
		rangeT = 1
	}
	if rangePV == 0 {
		rangePV = 1
	}
	minPV -= rangePV * 0.1
	maxPV += rangePV * 0.1
	rangePV = maxPV - minPV

	toX := func(t float64) float64 {
		return (t - minT) / rangeT * float64(width)
	}
	toY := func(pv float64) float64 {
		return float64(height) - (pv-minPV)/rangePV*float64(height)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	spY := toY(setpoint)
	sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#888888" stroke-width="1" stroke-dasharray="6,4"/>
`, spY, width, spY))

	sb.WriteString(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`)
	for i, s := range samples {
		x := toX(s.T)
		y := toY(s.ProcessVariable)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)

	return sb.String()
}
