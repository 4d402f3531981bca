package viz

import (
	"strings"

	"github.com/san-kum/firesync/internal/swarm"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	subX := x % 2
	subY := y % 4

	c.Grid[row][col] |= rune(pixelMap[subY][subX])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Viewport maps world coordinates onto a canvas's sub-pixel grid. Bounds
// grow monotonically as the swarm wanders, so the view zooms out but
// never jitters back in between frames.
type Viewport struct {
	minX, maxX float64
	minY, maxY float64
	valid      bool
}

func (v *Viewport) Include(oscillators []swarm.Oscillator) {
	for _, o := range oscillators {
		p := o.Position
		if !v.valid {
			v.minX, v.maxX = p.X, p.X
			v.minY, v.maxY = p.Y, p.Y
			v.valid = true
			continue
		}
		if p.X < v.minX {
			v.minX = p.X
		}
		if p.X > v.maxX {
			v.maxX = p.X
		}
		if p.Y < v.minY {
			v.minY = p.Y
		}
		if p.Y > v.maxY {
			v.maxY = p.Y
		}
	}
}

// Project converts a world point to sub-pixel canvas coordinates.
func (v *Viewport) Project(p swarm.Vec2, c *Canvas) (int, int) {
	return v.ProjectTo(p, c.Width*2, c.Height*4)
}

// ProjectTo converts a world point to coordinates on an arbitrary grid.
func (v *Viewport) ProjectTo(p swarm.Vec2, gridW, gridH int) (int, int) {
	w := float64(gridW)
	h := float64(gridH)

	spanX := v.maxX - v.minX
	spanY := v.maxY - v.minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	x := (p.X - v.minX) / spanX * (w - 1)
	// Flip Y: world up is canvas up.
	y := (1 - (p.Y-v.minY)/spanY) * (h - 1)
	return int(x), int(y)
}

// PlotSwarm widens the viewport to include the swarm and lights one
// pixel per oscillator.
func (c *Canvas) PlotSwarm(v *Viewport, oscillators []swarm.Oscillator) {
	v.Include(oscillators)
	for _, o := range oscillators {
		x, y := v.Project(o.Position, c)
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
