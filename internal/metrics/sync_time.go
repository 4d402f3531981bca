package metrics

import (
	"github.com/san-kum/firesync/internal/swarm"
)

// SyncTime records the first simulated time at which the order parameter
// reaches a threshold. Value is -1 if the swarm never got there.
type SyncTime struct {
	name      string
	threshold float64
	crossed   bool
	at        float64
}

func NewSyncTime(threshold float64) *SyncTime {
	return &SyncTime{
		name:      "sync_time",
		threshold: threshold,
		at:        -1,
	}
}

func (s *SyncTime) Name() string { return s.name }

func (s *SyncTime) Observe(e *swarm.Ensemble, t float64) {
	if s.crossed {
		return
	}
	if r, _ := e.OrderParameter(); r >= s.threshold {
		s.crossed = true
		s.at = t
	}
}

func (s *SyncTime) Value() float64 { return s.at }

func (s *SyncTime) Reset() {
	s.crossed = false
	s.at = -1
}
