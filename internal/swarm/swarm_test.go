package swarm

import (
	"errors"
	"math"
	"testing"
)

func TestNewInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want error
	}{
		{"zero size", Params{Size: 0, FreqMin: 1, FreqMax: 2}, ErrInvalidSize},
		{"negative size", Params{Size: -5, FreqMin: 1, FreqMax: 2}, ErrInvalidSize},
		{"inverted range", Params{Size: 3, FreqMin: 2, FreqMax: 1}, ErrInvalidFrequencyRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.p)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewDegenerateFrequencyRange(t *testing.T) {
	e, err := New(Params{Size: 4, FreqMin: 1.5, FreqMax: 1.5, Seed: 1})
	if err != nil {
		t.Fatalf("equal min/max should be valid: %v", err)
	}
	for i, o := range e.Oscillators() {
		if o.Freq != 1.5 {
			t.Errorf("oscillator %d: expected frequency 1.5, got %f", i, o.Freq)
		}
	}
}

func TestInitialSampling(t *testing.T) {
	origin := Vec2{X: 3, Y: -2}
	e, err := New(Params{Size: 50, Coupling: 1, FreqMin: 1, FreqMax: 4, Origin: origin, Seed: 9})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	for i, o := range e.Oscillators() {
		if o.Position != origin {
			t.Errorf("oscillator %d: expected position %v, got %v", i, origin, o.Position)
		}
		if o.Phase < 0 || o.Phase >= 2*math.Pi {
			t.Errorf("oscillator %d: phase %f outside [0, 2π)", i, o.Phase)
		}
		if o.Freq < 1 || o.Freq > 4 {
			t.Errorf("oscillator %d: frequency %f outside [1, 4]", i, o.Freq)
		}
	}
}

func TestDecoupledLimit(t *testing.T) {
	e, err := New(Params{Size: 5, Coupling: 0, FreqMin: 0.5, FreqMax: 3, Seed: 11})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	start := e.Oscillators()

	const dt = 0.01
	const ticks = 100
	for i := 0; i < ticks; i++ {
		e.Synchronize()
		e.Advance(dt)
	}

	elapsed := float64(ticks) * dt
	for i, o := range e.Oscillators() {
		want := start[i].Phase + start[i].Freq*elapsed
		if math.Abs(o.Phase-want) > 1e-9 {
			t.Errorf("oscillator %d: expected phase %f, got %f", i, want, o.Phase)
		}
	}
}

func TestUnitStepPerTick(t *testing.T) {
	e, err := New(Params{Size: 8, Coupling: 2, FreqMin: 1, FreqMax: 2, Seed: 3})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	for tick := 0; tick < 20; tick++ {
		before := e.Oscillators()
		e.Synchronize()
		e.Advance(0.05)
		after := e.Oscillators()

		for i := range after {
			dx := after[i].Position.X - before[i].Position.X
			dy := after[i].Position.Y - before[i].Position.Y
			if math.Abs(math.Hypot(dx, dy)-1.0) > 1e-12 {
				t.Fatalf("tick %d oscillator %d: displacement norm %f, expected 1",
					tick, i, math.Hypot(dx, dy))
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	run := func() []Oscillator {
		e, err := New(Params{Size: 12, Coupling: 1.3, FreqMin: 0.5, FreqMax: 2.5, Seed: 77})
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		for i := 0; i < 50; i++ {
			e.Synchronize()
			e.Advance(0.02)
		}
		return e.Oscillators()
	}

	a := run()
	b := run()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("oscillator %d diverged between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

// wrapAngle maps an angle difference into (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func TestEqualFrequencyPairConverges(t *testing.T) {
	e, err := New(Params{Size: 2, Coupling: 1, FreqMin: 1, FreqMax: 1, Seed: 5})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	gap := func() float64 {
		osc := e.Oscillators()
		return math.Abs(wrapAngle(osc[0].Phase - osc[1].Phase))
	}

	prev := gap()
	for block := 0; block < 20; block++ {
		for i := 0; i < 100; i++ {
			e.Synchronize()
			e.Advance(0.01)
		}
		cur := gap()
		if cur > prev+1e-9 {
			t.Fatalf("phase gap grew from %f to %f", prev, cur)
		}
		prev = cur
	}

	if prev > 0.05 {
		t.Errorf("pair failed to synchronize, final gap %f", prev)
	}
}

func TestOrderParameterRisesUnderCoupling(t *testing.T) {
	e, err := New(Params{Size: 10, Coupling: 4, FreqMin: 1, FreqMax: 1.2, Seed: 21})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	r0, _ := e.OrderParameter()
	for i := 0; i < 3000; i++ {
		e.Synchronize()
		e.Advance(0.01)
	}
	r1, _ := e.OrderParameter()

	if r1 < r0 {
		t.Errorf("order parameter fell under strong coupling: %f -> %f", r0, r1)
	}
	if r1 < 0.9 {
		t.Errorf("expected near-coherent swarm, got r = %f", r1)
	}
}

func TestOscillatorsSnapshotIsolation(t *testing.T) {
	e, err := New(Params{Size: 3, Coupling: 1, FreqMin: 1, FreqMax: 2, Seed: 8})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	snap := e.Oscillators()
	snap[0].Phase = 99
	snap[0].Position = Vec2{X: 1e6, Y: 1e6}

	if e.Oscillators()[0].Phase == 99 {
		t.Error("snapshot mutation leaked into ensemble")
	}
}

func TestVelocitiesCopy(t *testing.T) {
	e, err := New(Params{Size: 3, Coupling: 1, FreqMin: 1, FreqMax: 2, Seed: 8})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	e.Synchronize()
	vel := e.Velocities()
	vel[0] = 1e9

	if e.Velocities()[0] == 1e9 {
		t.Error("velocity mutation leaked into ensemble")
	}
}
