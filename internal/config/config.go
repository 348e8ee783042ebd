package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPGain    = 10.0
	DefaultIGain    = 100.0
	DefaultDGain    = 0.1
	DefaultSetpoint = 1.0
	DefaultDuration = 5.0
	DefaultInterval = 0.001
)

type Config struct {
	Gains     GainsConfig `yaml:"gains"`
	Setpoint  *float64    `yaml:"setpoint"`
	InitialPV float64     `yaml:"initial_pv"`
	Duration  float64     `yaml:"duration"`
	Interval  float64     `yaml:"interval"`
	Actuator  string      `yaml:"actuator"`
	Seed      int64       `yaml:"seed"`
}

type GainsConfig struct {
	P float64 `yaml:"p"`
	I float64 `yaml:"i"`
	D float64 `yaml:"d"`
}

func DefaultConfig() *Config {
	setpoint := DefaultSetpoint
	return &Config{
		Gains: GainsConfig{
			P: DefaultPGain,
			I: DefaultIGain,
			D: DefaultDGain,
		},
		Setpoint:  &setpoint,
		InitialPV: 0.0,
		Duration:  DefaultDuration,
		Interval:  DefaultInterval,
		Actuator:  "noisy",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the loop timing; gain bounds are enforced by the
// controller itself at construction.
func (c *Config) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if c.Interval < 0 {
		return fmt.Errorf("config: interval must be non-negative, got %f", c.Interval)
	}
	return nil
}
