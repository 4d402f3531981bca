package metrics

import (
	"github.com/san-kum/firesync/internal/swarm"
)

// MeanFrequency averages the population's effective phase velocity over
// the run. In a locked swarm this settles on the mean natural frequency.
type MeanFrequency struct {
	name    string
	sum     float64
	samples int
}

func NewMeanFrequency() *MeanFrequency {
	return &MeanFrequency{name: "mean_frequency"}
}

func (m *MeanFrequency) Name() string { return m.name }

func (m *MeanFrequency) Observe(e *swarm.Ensemble, t float64) {
	vel := e.Velocities()
	if len(vel) == 0 {
		return
	}
	total := 0.0
	for _, v := range vel {
		total += v
	}
	m.sum += total / float64(len(vel))
	m.samples++
}

func (m *MeanFrequency) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanFrequency) Reset() {
	m.sum = 0
	m.samples = 0
}
