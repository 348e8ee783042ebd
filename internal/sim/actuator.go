package sim

import (
	"fmt"
	"math/rand"
)

// Noisy is the reference plant: the output nudges the process variable
// by a hundredth of its value, then a small multiplicative fluctuation
// is applied. The seed makes runs reproducible.
func Noisy(seed int64) Actuator {
	rng := rand.New(rand.NewSource(seed))
	return func(pv, u float64) float64 {
		return (pv + 0.01*u) * (1.0 + 0.001*rng.Float64())
	}
}

// Integrating is the noise-free variant of Noisy.
func Integrating(seed int64) Actuator {
	return func(pv, u float64) float64 {
		return pv + 0.01*u
	}
}

// Lag is a first-order lag plant: the process variable relaxes toward
// the controller output.
func Lag(seed int64) Actuator {
	return func(pv, u float64) float64 {
		return pv + 0.05*(u-pv)
	}
}

var actuators = map[string]func(seed int64) Actuator{
	"noisy":       Noisy,
	"integrating": Integrating,
	"lag":         Lag,
}

// GetActuator looks up a plant model by name.
func GetActuator(name string, seed int64) (Actuator, error) {
	factory, ok := actuators[name]
	if !ok {
		return nil, fmt.Errorf("sim: unknown actuator: %s", name)
	}
	return factory(seed), nil
}

func ListActuators() []string {
	names := make([]string, 0, len(actuators))
	for name := range actuators {
		names = append(names, name)
	}
	return names
}
