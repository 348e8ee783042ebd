package pid

import "fmt"

const (
	GainMin = 0.0
	GainMax = 100.0
)

// Gains holds the three PID coefficients. Values are only obtainable
// through NewGains, so a held Gains is always within bounds.
type Gains struct {
	P float64
	I float64
	D float64
}

func NewGains(p, i, d float64) (Gains, error) {
	for _, g := range [...]float64{p, i, d} {
		if g < GainMin || g > GainMax {
			return Gains{}, fmt.Errorf("%w: (%g, %g, %g)", ErrGainOutOfRange, p, i, d)
		}
	}
	return Gains{P: p, I: i, D: d}, nil
}
