package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/swarm"
)

func recordedRun(t *testing.T) *Recorder {
	t.Helper()
	e, err := swarm.New(swarm.Params{Size: 3, Coupling: 1, FreqMin: 1, FreqMax: 2, Seed: 42})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}

	rec := NewRecorder(0.1)
	d := driver.New()
	if _, err := d.Run(context.Background(), e, rec.Frame(), driver.Config{TickInterval: 0.1, Duration: 0.5}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return rec
}

func testMeta() RunMetadata {
	return RunMetadata{
		Seed:     42,
		Dt:       0.1,
		Duration: 0.5,
		Size:     3,
		Coupling: 1,
		FreqMin:  1,
		FreqMax:  2,
		Ticks:    5,
		Status:   "completed",
		Metrics:  map[string]float64{"order": 0.8},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := recordedRun(t)

	runID, err := st.Save(testMeta(), rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Metrics["order"] != 0.8 {
		t.Errorf("expected order 0.8, got %f", meta.Metrics["order"])
	}

	times, frames, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(times) != 5 || len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d times / %d frames", len(times), len(frames))
	}
	if len(frames[0]) != 3 {
		t.Errorf("expected 3 oscillators per frame, got %d", len(frames[0]))
	}

	for fi := range frames {
		for i := range frames[fi] {
			if frames[fi][i].Position != rec.Frames[fi][i].Position {
				t.Fatalf("frame %d oscillator %d: position %v != recorded %v",
					fi, i, frames[fi][i].Position, rec.Frames[fi][i].Position)
			}
			if frames[fi][i].Phase != rec.Frames[fi][i].Phase {
				t.Fatalf("frame %d oscillator %d: phase mismatch", fi, i)
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	rec := recordedRun(t)
	if _, err := st.Save(testMeta(), rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(testMeta(), rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), recordedRun(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestRecorderOrderSeries(t *testing.T) {
	rec := recordedRun(t)

	if len(rec.Order) != 5 {
		t.Fatalf("expected 5 order samples, got %d", len(rec.Order))
	}
	for i, r := range rec.Order {
		if r < 0 || r > 1 {
			t.Errorf("sample %d: order parameter %f outside [0, 1]", i, r)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testMeta(), recordedRun(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	times, frames, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, times, frames); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, data.Meta.ID)
	}
	if len(data.States) != 5 {
		t.Errorf("expected 5 frames, got %d", len(data.States))
	}
	if len(data.States[0][0]) != 3 {
		t.Errorf("expected [x, y, phase] triples, got %d values", len(data.States[0][0]))
	}
}
