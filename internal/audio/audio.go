package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Synth turns swarm coherence into an ambient pad. The order parameter
// opens a low pass filter and deepens the shared tremolo, so a
// synchronized swarm literally pulses in unison while an incoherent one
// sounds like a diffuse wash.
type Synth struct {
	Stream *portaudio.Stream

	time        float64
	filterState [2]float64   // stereo LPF state
	delayLine   [2][]float64 // stereo delay buffer
	delayHead   int

	// Swarm inputs, written from the sim loop.
	mu           sync.Mutex
	order        float64
	meanFreq     float64
	orderSmooth  float64
	tremoloPhase float64

	Active bool
}

func NewSynth() *Synth {
	// 0.6 second delay for a larger space
	delayLen := int(float64(SampleRate) * 0.6)

	return &Synth{
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		meanFreq:  2.0,
	}
}

func (s *Synth) Start() error {
	portaudio.Initialize()

	// Output only (0 in, 2 out). Duplex often fails on Linux when input
	// and output devices differ.
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.process)
	if err != nil {
		return fmt.Errorf("open audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("start audio stream: %w", err)
	}

	s.Stream = stream
	s.Active = true
	return nil
}

func (s *Synth) Stop() {
	if s.Stream != nil {
		s.Stream.Stop()
		s.Stream.Close()
	}
	portaudio.Terminate()
	s.Active = false
}

// UpdateSync feeds the current order parameter and mean angular
// frequency into the synth. Safe to call from the sim loop.
func (s *Synth) UpdateSync(order, meanFreq float64) {
	s.mu.Lock()
	s.order = order
	if meanFreq > 0 {
		s.meanFreq = meanFreq
	}
	s.mu.Unlock()
}

// Triangle wave: smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low pass filter (one pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (s *Synth) process(out [][]float32) {
	// Harmony: Gm7 add9, G2 Bb2 D3 F3 A3
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}

	s.mu.Lock()
	targetOrder := s.order
	meanFreq := s.meanFreq
	s.mu.Unlock()

	// Slow morphing to prevent jumps between buffers.
	s.orderSmooth = s.orderSmooth*0.995 + targetOrder*0.005

	// Coherence opens the filter: 300Hz incoherent, 1500Hz locked.
	cutoff := 300.0 + s.orderSmooth*1200.0
	dt := 1.0 / float64(SampleRate)

	// The shared tremolo runs at the swarm's mean blink rate. Its depth
	// scales with coherence, so only a synchronized swarm pulses.
	tremoloRate := meanFreq / (2.0 * math.Pi)
	depth := 0.5 * s.orderSmooth

	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		sampleL := 0.0
		sampleR := 0.0

		trem := 1.0 - depth + depth*math.Max(math.Cos(s.tremoloPhase), 0)

		for j, f := range freqs {
			// Slight detune widens the stereo image.
			oscL := triangle(s.time * (f * 0.999))
			oscR := triangle(s.time * (f * 1.001))

			g := 1.0 / float64(len(freqs))

			// Very slow per-voice LFO (breathing)
			lfo := math.Sin(s.time*0.2 + float64(j))

			sampleL += oscL * g * (0.7 + 0.3*lfo) * trem
			sampleR += oscR * g * (0.7 + 0.3*lfo) * trem
		}

		var outL, outR float64
		outL, s.filterState[0] = lpf(sampleL, cutoff, dt, s.filterState[0])
		outR, s.filterState[1] = lpf(sampleR, cutoff, dt, s.filterState[1])

		// Ping-pong delay, L hears a bit of R's tail
		delayL := s.delayLine[0][s.delayHead]
		delayR := s.delayLine[1][s.delayHead]

		mixL := outL + delayL*0.3 + delayR*0.1
		mixR := outR + delayR*0.3 + delayL*0.1

		s.delayLine[0][s.delayHead] = mixL * 0.7
		s.delayLine[1][s.delayHead] = mixR * 0.7

		s.delayHead = (s.delayHead + 1) % len(s.delayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		s.time += dt
		s.tremoloPhase += 2 * math.Pi * tremoloRate * dt
	}
}
