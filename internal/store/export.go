package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/skalas/pidlab/internal/sim"
)

type ExportData struct {
	ID       string             `json:"id"`
	PGain    float64            `json:"p_gain"`
	IGain    float64            `json:"i_gain"`
	DGain    float64            `json:"d_gain"`
	Setpoint float64            `json:"setpoint"`
	Duration float64            `json:"duration"`
	Interval float64            `json:"interval"`
	Actuator string             `json:"actuator"`
	Seed     int64              `json:"seed"`
	Samples  []sim.Sample       `json:"samples"`
	Metrics  map[string]float64 `json:"metrics"`
}

func exportData(meta *RunMetadata, samples []sim.Sample) ExportData {
	return ExportData{
		ID:       meta.ID,
		PGain:    meta.PGain,
		IGain:    meta.IGain,
		DGain:    meta.DGain,
		Setpoint: meta.Setpoint,
		Duration: meta.Duration,
		Interval: meta.Interval,
		Actuator: meta.Actuator,
		Seed:     meta.Seed,
		Samples:  samples,
		Metrics:  meta.Metrics,
	}
}

func ExportJSON(w io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, samples))
}

func ExportJSONFile(path string, meta *RunMetadata, samples []sim.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, samples)
}
