//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void kuramoto_gpu(float* phases, float* freqs, float* vel, int n, float coupling);
*/
import "C"
import "unsafe"

type CUDABackend struct {
	available  bool
	deviceName string
}

func NewCUDABackend() *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) PhaseVelocities(phases, freqs []float64, coupling float64) []float64 {
	if !c.available {
		cpu := NewCPUBackend()
		return cpu.PhaseVelocities(phases, freqs, coupling)
	}

	n := len(phases)
	vel := make([]float64, n)

	phaseF := make([]float32, n)
	freqF := make([]float32, n)
	velF := make([]float32, n)

	for i := range phases {
		phaseF[i] = float32(phases[i])
	}
	for i := range freqs {
		freqF[i] = float32(freqs[i])
	}

	C.kuramoto_gpu(
		(*C.float)(unsafe.Pointer(&phaseF[0])),
		(*C.float)(unsafe.Pointer(&freqF[0])),
		(*C.float)(unsafe.Pointer(&velF[0])),
		C.int(n),
		C.float(coupling),
	)

	for i := 0; i < n; i++ {
		vel[i] = float64(velF[i])
	}

	return vel
}
