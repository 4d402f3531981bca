package compute

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// OpenGLBackend runs the coupling pass as a compute shader. It requires a
// current GL 4.3 context (the gui package provides one); Init must be
// called on the context thread before the first PhaseVelocities call.
type OpenGLBackend struct {
	Program     uint32
	SSBOPhase   uint32
	SSBOFreq    uint32
	SSBOVel     uint32
	Capacity    int32
	Initialized bool
}

func NewOpenGLBackend(capacity int) *OpenGLBackend {
	return &OpenGLBackend{Capacity: int32(capacity)}
}

func (c *OpenGLBackend) Name() string    { return "opengl" }
func (c *OpenGLBackend) Available() bool { return c.Initialized }

func (c *OpenGLBackend) Init(shaderPath string) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}

	program, err := createComputeProgram(shaderPath)
	if err != nil {
		return err
	}
	c.Program = program

	size := int(c.Capacity) * 4

	gl.GenBuffers(1, &c.SSBOPhase)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOPhase)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, c.SSBOPhase)

	gl.GenBuffers(1, &c.SSBOFreq)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOFreq)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 1, c.SSBOFreq)

	gl.GenBuffers(1, &c.SSBOVel)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOVel)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 2, c.SSBOVel)

	c.Initialized = true
	return nil
}

func (c *OpenGLBackend) PhaseVelocities(phases, freqs []float64, coupling float64) []float64 {
	n := len(phases)
	if !c.Initialized || int32(n) > c.Capacity {
		cpu := NewCPUBackend()
		return cpu.PhaseVelocities(phases, freqs, coupling)
	}

	phaseF := make([]float32, n)
	freqF := make([]float32, n)
	for i := range phases {
		phaseF[i] = float32(phases[i])
		freqF[i] = float32(freqs[i])
	}

	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOPhase)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*4, gl.Ptr(phaseF))
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOFreq)
	gl.BufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*4, gl.Ptr(freqF))

	gl.UseProgram(c.Program)

	locN := gl.GetUniformLocation(c.Program, gl.Str("numOscillators\x00"))
	gl.Uniform1i(locN, int32(n))

	locK := gl.GetUniformLocation(c.Program, gl.Str("coupling\x00"))
	gl.Uniform1f(locK, float32(coupling))

	numGroups := (int32(n) + 255) / 256
	gl.DispatchCompute(uint32(numGroups), 1, 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	velF := make([]float32, n)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, c.SSBOVel)
	gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, n*4, gl.Ptr(velF))

	vel := make([]float64, n)
	for i := range velF {
		vel[i] = float64(velF[i])
	}
	return vel
}

func (c *OpenGLBackend) Cleanup() {
	if !c.Initialized {
		return
	}
	gl.DeleteBuffers(1, &c.SSBOPhase)
	gl.DeleteBuffers(1, &c.SSBOFreq)
	gl.DeleteBuffers(1, &c.SSBOVel)
	gl.DeleteProgram(c.Program)
	c.Initialized = false
}

func createComputeProgram(path string) (uint32, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content := string(source) + "\x00"

	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csources, free := gl.Strs(content)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile compute shader: %v", log)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return 0, fmt.Errorf("failed to link program")
	}

	gl.DeleteShader(shader)
	return program, nil
}
