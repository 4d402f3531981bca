// Package compute provides hardware-accelerated backends for the
// all-pairs coupling pass.
//
// The package automatically selects the best available backend:
//
//   - CUDA: GPU kernel for the O(N²) phase-velocity sum
//   - CPU: serial for small swarms, worker-parallel above 64 oscillators
//
// An OpenGL 4.3 compute-shader backend can be installed explicitly when a
// GL context exists (see the gui package):
//
//	backend := compute.NewOpenGLBackend(4096)
//	if err := backend.Init("shaders/kuramoto.comp"); err == nil {
//		compute.SetBackend(backend)
//	}
//
// Build with CUDA support:
//
//	go build -tags cuda ./...
package compute
