package compute

// Backend computes the all-pairs coupling pass. PhaseVelocities returns,
// for every oscillator i:
//
//	freqs[i] + Σ_j (coupling/N)·sin(phases[j] − phases[i])
//
// summed over all j including i itself. Implementations must read phases
// as a consistent snapshot and be deterministic for identical inputs.
type Backend interface {
	Name() string
	Available() bool
	PhaseVelocities(phases, freqs []float64, coupling float64) []float64
	Cleanup()
}

var activeBackend Backend

func init() {
	// Auto-select best available backend (CUDA if available, else CPU)
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cuda := NewCUDABackend()
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend()
}
