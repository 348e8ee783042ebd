package config

func preset(p, i, d, setpoint, duration float64) *Config {
	sp := setpoint
	return &Config{
		Gains:    GainsConfig{P: p, I: i, D: d},
		Setpoint: &sp,
		Duration: duration,
		Interval: DefaultInterval,
		Actuator: "noisy",
	}
}

var Presets = map[string]*Config{
	// The original demo tuning.
	"reference": preset(10, 100, 0.1, 1.0, 5.0),
	// Heavy proportional action, no memory.
	"aggressive": preset(80, 0, 0, 1.0, 5.0),
	// Integral-dominated; slow approach, no steady-state error.
	"sluggish": preset(2, 40, 0, 1.0, 15.0),
	// Derivative damping against the noisy plant.
	"damped": preset(10, 60, 5, 1.0, 10.0),
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
