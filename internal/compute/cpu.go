package compute

import (
	"math"
	"runtime"
	"sync"
)

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.NumCPU(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}

func (c *CPUBackend) PhaseVelocities(phases, freqs []float64, coupling float64) []float64 {
	n := len(phases)
	vel := make([]float64, n)

	if n < 64 {
		c.velocitiesSerial(phases, freqs, coupling, vel)
		return vel
	}

	c.velocitiesParallel(phases, freqs, coupling, vel)
	return vel
}

func (c *CPUBackend) velocitiesSerial(phases, freqs []float64, coupling float64, vel []float64) {
	n := len(phases)
	w := coupling / float64(n)

	for i := 0; i < n; i++ {
		pi := phases[i]
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += math.Sin(phases[j] - pi)
		}
		vel[i] = freqs[i] + w*sum
	}
}

// velocitiesParallel splits the outer loop across workers. Each worker
// runs its inner sums serially, so the result is identical to the serial
// kernel regardless of worker count.
func (c *CPUBackend) velocitiesParallel(phases, freqs []float64, coupling float64, vel []float64) {
	n := len(phases)
	w := coupling / float64(n)

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for worker := 0; worker < c.workers; worker++ {
		start := worker * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				pi := phases[i]
				sum := 0.0
				for j := 0; j < n; j++ {
					sum += math.Sin(phases[j] - pi)
				}
				vel[i] = freqs[i] + w*sum
			}
		}(start, end)
	}

	wg.Wait()
}
