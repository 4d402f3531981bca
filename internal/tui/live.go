package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/firesync/internal/driver"
	"github.com/san-kum/firesync/internal/swarm"
	"github.com/san-kum/firesync/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
)

// brightness ramp for firefly glow
var glyphs = []rune{' ', '.', ':', 'o', 'O', '@'}

// LiveRenderer is a plain ANSI swarm view for `run --live`. It plugs
// straight into the driver as the frame callback; frames arriving faster
// than the configured rate are dropped, the simulation is not.
type LiveRenderer struct {
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	viewport  viz.Viewport
	ticks     int
	dt        float64
}

func NewLiveRenderer(frameRate int, dt float64) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		frameRate: frameRate,
		canvas:    canvas,
		dt:        dt,
	}
}

func (r *LiveRenderer) Frame() driver.FrameFunc {
	return func(e *swarm.Ensemble) error {
		r.ticks++

		elapsed := time.Since(r.lastFrame)
		if elapsed < time.Second/time.Duration(r.frameRate) {
			return nil
		}
		r.lastFrame = time.Now()

		r.clear()
		r.drawSwarm(e.Oscillators())
		r.render(e)
		return nil
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) drawSwarm(oscillators []swarm.Oscillator) {
	r.viewport.Include(oscillators)

	for _, o := range oscillators {
		sx, sy := r.viewport.ProjectTo(o.Position, width, height)

		brightness := (math.Cos(o.Phase) + 1) / 2
		gi := int(brightness * float64(len(glyphs)))
		if gi >= len(glyphs) {
			gi = len(glyphs) - 1
		}
		if gi == 0 {
			gi = 1 // a dark firefly is still visible
		}
		r.set(sx, sy, glyphs[gi])
	}
}

func (r *LiveRenderer) render(e *swarm.Ensemble) {
	coherence, _ := e.OrderParameter()

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  fireflies n=%d k=%.2f  t=%.2fs\n", e.Size(), e.Coupling(), float64(r.ticks)*r.dt))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  sync %s %.3f\n", viz.CoherenceBar(coherence, 30), coherence))

	fmt.Print(b.String())
}
