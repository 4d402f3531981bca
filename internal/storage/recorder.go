package storage

import (
	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/swarm"
)

// Recorder captures a run's trajectory as it happens, for later
// persistence and plotting. Use Frame as (or from inside) the driver's
// frame callback.
type Recorder struct {
	dt     float64
	Times  []float64
	Frames [][]swarm.Oscillator
	Order  []float64
}

func NewRecorder(dt float64) *Recorder {
	return &Recorder{dt: dt}
}

func (r *Recorder) Frame() driver.FrameFunc {
	return func(e *swarm.Ensemble) error {
		r.Record(e)
		return nil
	}
}

func (r *Recorder) Record(e *swarm.Ensemble) {
	r.Times = append(r.Times, float64(len(r.Times)+1)*r.dt)
	r.Frames = append(r.Frames, e.Oscillators())
	coherence, _ := e.OrderParameter()
	r.Order = append(r.Order, coherence)
}
