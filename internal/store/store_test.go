package store

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/skalas/pidlab/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{T: 0, ProcessVariable: 0, Output: 0, Error: 1},
			{T: 0.001, ProcessVariable: 0.1, Output: 10, Error: 1},
			{T: 0.002, ProcessVariable: 0.19, Output: 9.2, Error: 0.9},
		},
		Metrics: map[string]float64{"control_effort": 6.4},
		Elapsed: 3 * time.Millisecond,
	}
}

func testMeta() RunMetadata {
	return RunMetadata{
		PGain:    10,
		IGain:    100,
		DGain:    0.1,
		Setpoint: 1.0,
		Duration: 5.0,
		Interval: 0.001,
		Actuator: "noisy",
		Seed:     42,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "run_") {
		t.Errorf("unexpected run id: %s", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.PGain != 10 || meta.Setpoint != 1.0 {
		t.Errorf("metadata lost in round trip: %+v", meta)
	}
	if meta.Metrics["control_effort"] != 6.4 {
		t.Error("metrics lost in round trip")
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[1].Output != 10 || samples[2].Error != 0.9 {
		t.Errorf("sample data lost in round trip: %+v", samples)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save(testMeta(), testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("run_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestExportJSON(t *testing.T) {
	meta := testMeta()
	meta.ID = "run_1"
	result := testResult()

	var buf bytes.Buffer
	if err := ExportJSON(&buf, &meta, result.Samples); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.ID != "run_1" {
		t.Errorf("expected id run_1, got %s", data.ID)
	}
	if len(data.Samples) != 3 {
		t.Errorf("expected 3 samples, got %d", len(data.Samples))
	}
	if data.Samples[1].ProcessVariable != 0.1 {
		t.Errorf("sample values lost: %+v", data.Samples[1])
	}
}
