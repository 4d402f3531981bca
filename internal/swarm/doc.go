// Package swarm implements a population of coupled phase oscillators
// (Kuramoto-style fireflies).
//
// The package defines the two halves of a simulation tick:
//
//   - [Ensemble.Synchronize]: recompute every oscillator's phase velocity
//     from a consistent snapshot of all phases
//   - [Ensemble.Advance]: integrate phases and move each oscillator one
//     unit step in the direction of its updated phase
//
// # Example
//
//	ens, _ := swarm.New(swarm.Params{Size: 13, Coupling: 1.5, FreqMin: 1, FreqMax: 3, Seed: 42})
//	ens.Synchronize()
//	ens.Advance(0.02)
//
// # Thread Safety
//
// Ensemble instances are NOT thread-safe. A driver run owns its ensemble
// exclusively; see the driver package for the per-tick ordering contract.
package swarm
