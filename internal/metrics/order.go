package metrics

import (
	"github.com/san-kum/firesync/internal/swarm"
)

// Order tracks the Kuramoto order parameter r: its latest value and its
// time average over the run.
type Order struct {
	name    string
	sum     float64
	last    float64
	samples int
}

func NewOrder() *Order {
	return &Order{name: "order"}
}

func (o *Order) Name() string { return o.name }

func (o *Order) Observe(e *swarm.Ensemble, t float64) {
	r, _ := e.OrderParameter()
	o.last = r
	o.sum += r
	o.samples++
}

// Value is the time-averaged order parameter.
func (o *Order) Value() float64 {
	if o.samples == 0 {
		return 0
	}
	return o.sum / float64(o.samples)
}

// Last is the order parameter at the most recent tick.
func (o *Order) Last() float64 { return o.last }

func (o *Order) Reset() {
	o.sum = 0
	o.last = 0
	o.samples = 0
}
