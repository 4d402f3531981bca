//go:build !cuda

package compute

type CUDABackend struct{}

func NewCUDABackend() *CUDABackend {
	return &CUDABackend{}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) PhaseVelocities(phases, freqs []float64, coupling float64) []float64 {
	cpu := NewCPUBackend()
	return cpu.PhaseVelocities(phases, freqs, coupling)
}
