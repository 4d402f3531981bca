package metrics

import (
	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/swarm"
)

// Metric observes ensemble state once per tick and reduces it to a
// scalar at the end of a run.
type Metric interface {
	Name() string
	Observe(e *swarm.Ensemble, t float64)
	Value() float64
	Reset()
}

// Frame adapts a set of metrics into a driver frame callback. The
// callback tracks simulated time itself, advancing by dt per frame.
func Frame(dt float64, ms ...Metric) driver.FrameFunc {
	ticks := 0
	return func(e *swarm.Ensemble) error {
		ticks++
		t := float64(ticks) * dt
		for _, m := range ms {
			m.Observe(e, t)
		}
		return nil
	}
}

// Collect runs every metric's Value into a name-keyed map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
