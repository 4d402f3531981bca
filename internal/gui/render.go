package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) drawSwarm() {
	rl.BeginMode2D(a.Camera)

	if a.ShowTrails {
		a.drawTrails()
	}

	for _, o := range a.Ens.Oscillators() {
		// Blink brightness follows the cosine of the phase.
		brightness := (math.Cos(o.Phase) + 1) / 2
		alpha := uint8(40 + brightness*215)

		pos := rl.NewVector2(float32(o.Position.X), float32(o.Position.Y))
		size := float32(1.5 + brightness*2.5)

		// Soft glow sprite under a solid core
		tint := rl.NewColor(ColFirefly.R, ColFirefly.G, ColFirefly.B, alpha)
		dst := rl.NewRectangle(pos.X-size, pos.Y-size, size*2, size*2)
		src := rl.NewRectangle(0, 0, float32(a.ParticleTex.Width), float32(a.ParticleTex.Height))
		rl.DrawTexturePro(a.ParticleTex, src, dst, rl.NewVector2(0, 0), 0, tint)

		core := rl.NewColor(255, 255, 255, alpha)
		rl.DrawCircleV(pos, 0.4, core)
	}

	rl.EndMode2D()
}

func (a *App) drawTrails() {
	n := len(a.History)
	if n < 2 {
		return
	}

	for i := range a.History[0] {
		for f := 1; f < n; f++ {
			// Older segments fade out.
			alpha := uint8(float64(f) / float64(n) * 60)
			col := rl.NewColor(ColTrail.R, ColTrail.G, ColTrail.B, alpha)

			p0 := a.History[f-1][i]
			p1 := a.History[f][i]
			rl.DrawLineV(
				rl.NewVector2(float32(p0.X), float32(p0.Y)),
				rl.NewVector2(float32(p1.X), float32(p1.Y)),
				col,
			)
		}
	}
}
