package driver

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/san-kum/firesync/internal/swarm"
)

// Status is the driver's lifecycle state for one run.
type Status int32

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FrameFunc renders the current ensemble state. The driver never calls it
// concurrently with a tick; an error terminates the run.
type FrameFunc func(e *swarm.Ensemble) error

// Config holds scheduling parameters for one run. Duration is simulated
// time; zero means run until the context is cancelled. FrameDelay is
// wall-clock pacing between frames and never changes how many ticks a
// bounded run performs.
type Config struct {
	TickInterval float64
	Duration     float64
	FrameDelay   time.Duration
}

// Result summarizes a finished run.
type Result struct {
	Ticks   int
	SimTime float64
	Status  Status
}

// Driver repeatedly advances an ensemble and invokes a frame callback.
// Each tick is strictly sequential: Synchronize, Advance(TickInterval),
// then the callback. Cancellation is observed only at tick boundaries, so
// no tick is ever left half-done. A Driver drives one run at a time; the
// ensemble passed to Run is owned by that run for its duration.
type Driver struct {
	status atomic.Int32
}

func New() *Driver {
	return &Driver{}
}

// Status reports the current run state. Safe to call from other
// goroutines while a run is in flight.
func (d *Driver) Status() Status {
	return Status(d.status.Load())
}

func (d *Driver) Run(ctx context.Context, e *swarm.Ensemble, onFrame FrameFunc, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	// Bounded runs perform floor(Duration/TickInterval) ticks with no
	// partial final tick. The epsilon keeps float quotients that land a
	// hair under an integer (e.g. 0.3/0.1) from losing a tick.
	steps := -1
	if cfg.Duration > 0 {
		steps = int(math.Floor(cfg.Duration/cfg.TickInterval + 1e-9))
	}

	result := &Result{Status: StatusRunning}
	d.status.Store(int32(StatusRunning))
	finish := func(s Status) {
		result.Status = s
		d.status.Store(int32(s))
	}

	for steps < 0 || result.Ticks < steps {
		select {
		case <-ctx.Done():
			finish(StatusCancelled)
			return result, ctx.Err()
		default:
		}

		e.Synchronize()
		e.Advance(cfg.TickInterval)
		result.Ticks++
		result.SimTime = float64(result.Ticks) * cfg.TickInterval

		if err := onFrame(e); err != nil {
			finish(StatusFailed)
			return result, fmt.Errorf("frame %d: %w", result.Ticks, err)
		}

		if cfg.FrameDelay > 0 {
			select {
			case <-ctx.Done():
				finish(StatusCancelled)
				return result, ctx.Err()
			case <-time.After(cfg.FrameDelay):
			}
		}
	}

	finish(StatusCompleted)
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %f", cfg.TickInterval)
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %f", cfg.Duration)
	}
	return nil
}
