package gui

import (
	"fmt"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/firesync/internal/audio"
	"github.com/san-kum/firesync/internal/compute"
	"github.com/san-kum/firesync/internal/config"
	"github.com/san-kum/firesync/internal/swarm"
)

// Theme colors (warm night palette)
var (
	ColBg      = rl.NewColor(8, 10, 14, 255)     // Night sky
	ColFirefly = rl.NewColor(255, 233, 110, 255) // Warm yellow
	ColTrail   = rl.NewColor(255, 233, 110, 255) // Faded per-point alpha
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright white
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark gray
	ColGraph   = rl.NewColor(180, 180, 180, 255) // Soft white
)

type App struct {
	Cfg     *config.Config
	Ens     *swarm.Ensemble
	Time    float64
	Running bool
	Camera  rl.Camera2D
	Font    rl.Font

	// Trails: ring buffer of past positions, newest last.
	History    [][]swarm.Vec2
	MaxHistory int
	ShowTrails bool

	// Order parameter history for the HUD graph.
	Telemetry []float64

	ParticleTex rl.Texture2D

	// Audio
	Audio *audio.Synth

	// Compute
	UseCompute bool
	GLBackend  *compute.OpenGLBackend
}

func initWindow() {
	rl.InitWindow(1280, 720, "firesync")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, useCompute bool) (*App, error) {
	ens, err := swarm.New(cfg.SwarmParams())
	if err != nil {
		return nil, err
	}

	app := &App{
		Cfg:     cfg,
		Ens:     ens,
		Running: true,
		Camera: rl.Camera2D{
			Offset: rl.NewVector2(640, 360),
			Target: rl.NewVector2(float32(cfg.Swarm.OriginX), float32(cfg.Swarm.OriginY)),
			Zoom:   6.0,
		},
		Font:       loadFont(),
		MaxHistory: 50,
		History:    make([][]swarm.Vec2, 0, 50),
		Telemetry:  make([]float64, 0, 400),
		ShowTrails: true,
		UseCompute: useCompute,
	}

	// Glow texture
	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.ParticleTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	if useCompute {
		gl := compute.NewOpenGLBackend(len(ens.Oscillators()))
		if err := gl.Init("shaders/kuramoto.comp"); err != nil {
			fmt.Printf("compute init error: %v\n", err)
			app.UseCompute = false
		} else {
			app.GLBackend = gl
			compute.SetBackend(gl)
		}
	}

	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, useCompute, sound bool) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(cfg, useCompute)
	if err != nil {
		return err
	}
	defer app.Close()

	if sound {
		app.Audio = audio.NewSynth()
		if err := app.Audio.Start(); err != nil {
			fmt.Printf("audio disabled: %v\n", err)
			app.Audio = nil
		}
	}

	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
	if a.GLBackend != nil {
		a.GLBackend.Cleanup()
		compute.SetBackend(compute.NewCPUBackend())
	}
}

func (a *App) reset() {
	ens, err := swarm.New(a.Cfg.SwarmParams())
	if err != nil {
		return
	}
	a.Ens = ens
	a.Time = 0
	a.History = a.History[:0]
	a.Telemetry = a.Telemetry[:0]
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.Close()
		os.Exit(0)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}
	if rl.IsKeyPressed(rl.KeyV) {
		a.ShowTrails = !a.ShowTrails
	}

	// Coupling adjustment
	step := 0.05
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 0.5
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Ens.SetCoupling(a.Ens.Coupling() + step)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		k := a.Ens.Coupling() - step
		if k < 0 {
			k = 0
		}
		a.Ens.SetCoupling(k)
	}

	// Camera pan and zoom
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Target.X -= delta.X / a.Camera.Zoom
		a.Camera.Target.Y -= delta.Y / a.Camera.Zoom
	}
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		a.Camera.Zoom *= float32(math.Pow(1.1, float64(wheel)))
		if a.Camera.Zoom < 0.5 {
			a.Camera.Zoom = 0.5
		}
	}

	if !a.Running {
		return
	}

	a.Ens.Synchronize()
	a.Ens.Advance(a.Cfg.Dt)
	a.Time += a.Cfg.Dt

	oscillators := a.Ens.Oscillators()

	// Record trails
	frame := make([]swarm.Vec2, len(oscillators))
	for i, o := range oscillators {
		frame[i] = o.Position
	}
	a.History = append(a.History, frame)
	if len(a.History) > a.MaxHistory {
		a.History = a.History[1:]
	}

	coherence, _ := a.Ens.OrderParameter()
	a.Telemetry = append(a.Telemetry, coherence)
	if len(a.Telemetry) > 400 {
		a.Telemetry = a.Telemetry[1:]
	}

	// Sonification
	if a.Audio != nil && a.Audio.Active {
		meanFreq := 0.0
		for _, v := range a.Ens.Velocities() {
			meanFreq += v
		}
		meanFreq /= float64(a.Ens.Size())
		a.Audio.UpdateSync(coherence, meanFreq)
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawSwarm()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("firesync", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: n=%d k=%.2f", a.Ens.Size(), a.Ens.Coupling()), 150, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)

	coherence, _ := a.Ens.OrderParameter()
	a.drawText(fmt.Sprintf("SYNC %.3f", coherence), 30, 620, 16, ColGraph)

	backend := "cpu"
	if a.UseCompute {
		backend = "opengl"
	}
	a.drawText(fmt.Sprintf("t=%.1fs  %s  %d FPS", a.Time, backend, int32(rl.GetFPS())), 30, 680, 14, ColTextDim)
	a.drawText("[SPACE] PAUSE  [R] RESET  [UP/DN] COUPLING  [V] TRAILS  [Q] QUIT", 640, 680, 14, ColTextDim)

	if a.Audio != nil && a.Audio.Active {
		a.drawText("SND [ON]", 30, 650, 14, ColText)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 550
	width, height := 400, 60

	// Order parameter lives in [0, 1], no need to renormalize.
	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		py := float32(rectY+height) - float32(val)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColGraph)
	a.drawText(fmt.Sprintf("r: %.3f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
