package swarm

import "errors"

// Domain errors for ensemble construction.
var (
	// ErrInvalidSize indicates a non-positive ensemble size.
	ErrInvalidSize = errors.New("swarm: ensemble size must be positive")

	// ErrInvalidFrequencyRange indicates a frequency range whose minimum
	// exceeds its maximum.
	ErrInvalidFrequencyRange = errors.New("swarm: frequency range min exceeds max")
)
