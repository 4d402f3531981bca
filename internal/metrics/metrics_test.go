package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/swarm"
)

func newEnsemble(t *testing.T, size int, coupling float64) *swarm.Ensemble {
	t.Helper()
	e, err := swarm.New(swarm.Params{Size: size, Coupling: coupling, FreqMin: 1, FreqMax: 1.2, Seed: 17})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	return e
}

func TestOrderSingleOscillator(t *testing.T) {
	e := newEnsemble(t, 1, 0)
	m := NewOrder()

	m.Observe(e, 0)

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected r = 1 for a single oscillator, got %f", m.Value())
	}
	if m.Last() != m.Value() {
		t.Errorf("single sample: last %f should equal mean %f", m.Last(), m.Value())
	}
}

func TestOrderReset(t *testing.T) {
	e := newEnsemble(t, 5, 1)
	m := NewOrder()

	m.Observe(e, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero order after observe")
	}

	m.Reset()
	if m.Value() != 0 || m.Last() != 0 {
		t.Error("expected zeroed metric after reset")
	}
}

func TestSyncTimeCrossing(t *testing.T) {
	e := newEnsemble(t, 8, 5)
	m := NewSyncTime(0.95)

	const dt = 0.01
	fn := Frame(dt, m)

	d := driver.New()
	if _, err := d.Run(context.Background(), e, fn, driver.Config{TickInterval: dt, Duration: 40}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.Value() < 0 {
		t.Fatal("strongly coupled swarm never reached the threshold")
	}
	if m.Value() > 40 {
		t.Errorf("sync time %f outside run", m.Value())
	}
}

func TestSyncTimeNeverCrossed(t *testing.T) {
	e := newEnsemble(t, 8, 0)
	m := NewSyncTime(0.9999)

	for i := 0; i < 100; i++ {
		e.Synchronize()
		e.Advance(0.01)
		m.Observe(e, float64(i+1)*0.01)
	}

	if m.Value() != -1 {
		t.Errorf("expected -1 for unsynchronized swarm, got %f", m.Value())
	}
}

func TestMeanFrequencyDecoupled(t *testing.T) {
	e, err := swarm.New(swarm.Params{Size: 6, Coupling: 0, FreqMin: 2, FreqMax: 2, Seed: 4})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	m := NewMeanFrequency()

	for i := 0; i < 10; i++ {
		e.Synchronize()
		e.Advance(0.01)
		m.Observe(e, float64(i+1)*0.01)
	}

	if math.Abs(m.Value()-2.0) > 1e-12 {
		t.Errorf("expected mean frequency 2.0, got %f", m.Value())
	}
}

func TestCollect(t *testing.T) {
	e := newEnsemble(t, 3, 1)
	ms := []Metric{NewOrder(), NewMeanFrequency()}

	e.Synchronize()
	e.Advance(0.01)
	for _, m := range ms {
		m.Observe(e, 0.01)
	}

	got := Collect(ms)
	if _, ok := got["order"]; !ok {
		t.Error("order metric missing from collection")
	}
	if _, ok := got["mean_frequency"]; !ok {
		t.Error("mean_frequency metric missing from collection")
	}
}
