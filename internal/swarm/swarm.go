package swarm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/firesync/internal/compute"
)

// Vec2 is a 2D point in world coordinates.
type Vec2 struct {
	X, Y float64
}

// Oscillator is a read-only snapshot of one phase agent.
type Oscillator struct {
	Position Vec2
	Phase    float64 // radians, unwrapped
	Freq     float64 // natural frequency, fixed at creation
}

// Params configures ensemble construction.
type Params struct {
	Size     int
	Coupling float64
	FreqMin  float64
	FreqMax  float64
	Origin   Vec2
	Seed     int64
}

// Ensemble is an ordered, fixed-size population of phase oscillators
// with global sinusoidal coupling. The per-pair coupling weight is
// Coupling/Size, which keeps aggregate pull bounded as the population
// grows.
type Ensemble struct {
	phases     []float64
	freqs      []float64
	velocities []float64
	positions  []Vec2
	coupling   float64
}

// New constructs an ensemble of p.Size oscillators. Phases are drawn
// uniformly from [0, 2π) and natural frequencies uniformly from
// [FreqMin, FreqMax]; every oscillator starts at p.Origin. Sampling is
// deterministic for a given Seed.
func New(p Params) (*Ensemble, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("size %d: %w", p.Size, ErrInvalidSize)
	}
	if p.FreqMin > p.FreqMax {
		return nil, fmt.Errorf("range [%g, %g]: %w", p.FreqMin, p.FreqMax, ErrInvalidFrequencyRange)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	e := &Ensemble{
		phases:     make([]float64, p.Size),
		freqs:      make([]float64, p.Size),
		velocities: make([]float64, p.Size),
		positions:  make([]Vec2, p.Size),
		coupling:   p.Coupling,
	}
	span := p.FreqMax - p.FreqMin
	for i := 0; i < p.Size; i++ {
		e.phases[i] = rng.Float64() * 2 * math.Pi
		e.freqs[i] = p.FreqMin + rng.Float64()*span
		e.positions[i] = p.Origin
	}
	return e, nil
}

func (e *Ensemble) Size() int             { return len(e.phases) }
func (e *Ensemble) Coupling() float64     { return e.coupling }
func (e *Ensemble) SetCoupling(k float64) { e.coupling = k }

// Synchronize recomputes every oscillator's phase velocity:
//
//	vel[i] = freq[i] + Σ_j (K/N)·sin(phase[j] − phase[i])
//
// The sum runs over all oscillators including i itself (the self term is
// sin(0) = 0). All velocities are computed from the phases as they stood
// at entry; the pass writes no phase, so the Jacobi-style simultaneous
// update is preserved. The O(N²) kernel is delegated to the active
// compute backend.
func (e *Ensemble) Synchronize() {
	e.velocities = compute.GetBackend().PhaseVelocities(e.phases, e.freqs, e.coupling)
}

// Advance integrates one tick: phase[i] += vel[i]·dt, then the oscillator
// moves one unit step in the direction of its updated phase. Synchronize
// must have been called earlier in the same tick; advancing on stale
// velocities is a caller error and yields meaningless motion, not a
// detected fault.
func (e *Ensemble) Advance(dt float64) {
	for i := range e.phases {
		e.phases[i] += e.velocities[i] * dt
		e.positions[i].X += math.Cos(e.phases[i])
		e.positions[i].Y += math.Sin(e.phases[i])
	}
}

// Oscillators returns a snapshot of the population for rendering. The
// returned slice is a copy; mutating it does not affect the ensemble.
func (e *Ensemble) Oscillators() []Oscillator {
	out := make([]Oscillator, len(e.phases))
	for i := range out {
		out[i] = Oscillator{
			Position: e.positions[i],
			Phase:    e.phases[i],
			Freq:     e.freqs[i],
		}
	}
	return out
}

// Velocities returns a copy of the phase velocities produced by the most
// recent Synchronize pass. Before the first pass all entries are zero.
func (e *Ensemble) Velocities() []float64 {
	out := make([]float64, len(e.velocities))
	copy(out, e.velocities)
	return out
}

// OrderParameter returns the Kuramoto mean field: the coherence r in
// [0, 1] (1 means all phases aligned) and the mean phase angle psi.
func (e *Ensemble) OrderParameter() (r, psi float64) {
	var sx, sy float64
	for _, p := range e.phases {
		sx += math.Cos(p)
		sy += math.Sin(p)
	}
	n := float64(len(e.phases))
	sx /= n
	sy /= n
	return math.Hypot(sx, sy), math.Atan2(sy, sx)
}
