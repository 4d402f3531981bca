package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Swarm.Size <= 0 {
		t.Error("size should be positive")
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Swarm.FreqMin > cfg.Swarm.FreqMax {
		t.Error("frequency range should be ordered")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Swarm.Size = 99
	cfg.Swarm.Coupling = 2.75
	cfg.Seed = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Swarm.Size != 99 {
		t.Errorf("expected size 99, got %d", loaded.Swarm.Size)
	}
	if loaded.Swarm.Coupling != 2.75 {
		t.Errorf("expected coupling 2.75, got %f", loaded.Swarm.Coupling)
	}
	if loaded.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", loaded.Seed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSwarmParamsSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 42

	p := cfg.SwarmParams()
	if p.Seed != 42 {
		t.Errorf("explicit seed should pass through, got %d", p.Seed)
	}

	cfg.Seed = 0
	if cfg.SwarmParams().Seed == 0 {
		t.Error("zero seed should be replaced")
	}
}

func TestDriverConfigPacing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 50

	headless := cfg.DriverConfig(false)
	if headless.FrameDelay != 0 {
		t.Errorf("headless runs should not pace, got %v", headless.FrameDelay)
	}

	live := cfg.DriverConfig(true)
	if live.FrameDelay != 20*time.Millisecond {
		t.Errorf("expected 20ms frame delay, got %v", live.FrameDelay)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("fireflies")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Swarm.Size != 13 {
		t.Errorf("expected 13 fireflies, got %d", cfg.Swarm.Size)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
}
