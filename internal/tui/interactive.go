package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/firesync/internal/compute"
	"github.com/san-kum/firesync/internal/config"
	"github.com/san-kum/firesync/internal/swarm"
	"github.com/san-kum/firesync/internal/viz"
)

const (
	canvasW         = 48
	canvasH         = 18
	historyCapacity = 600
)

type TickMsg time.Time

// Model drives an ensemble from bubbletea's tick loop and renders it on
// a braille canvas with an order-parameter history graph alongside.
type Model struct {
	cfg      *config.Config
	ens      *swarm.Ensemble
	canvas   *viz.Canvas
	viewport viz.Viewport
	t        float64
	running  bool
	rHistory []float64
	showHelp bool
	err      error
}

func NewModel(cfg *config.Config) (Model, error) {
	ens, err := swarm.New(cfg.SwarmParams())
	if err != nil {
		return Model{}, err
	}
	return Model{
		cfg:      cfg,
		ens:      ens,
		canvas:   viz.NewCanvas(canvasW, canvasH),
		running:  true,
		rHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	rate := m.cfg.FrameRate
	if rate <= 0 {
		rate = 30
	}
	return tea.Tick(time.Second/time.Duration(rate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "up", "k", "+", "=":
			m.ens.SetCoupling(m.ens.Coupling() + 0.1)
		case "down", "j", "-", "_":
			k := m.ens.Coupling() - 0.1
			if k < 0 {
				k = 0
			}
			m.ens.SetCoupling(k)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.ens.Synchronize()
	m.ens.Advance(m.cfg.Dt)
	m.t += m.cfg.Dt

	coherence, _ := m.ens.OrderParameter()
	m.rHistory = append(m.rHistory, coherence)
	if len(m.rHistory) > historyCapacity {
		m.rHistory = m.rHistory[1:]
	}
}

func (m *Model) reset() {
	ens, err := swarm.New(m.cfg.SwarmParams())
	if err != nil {
		m.err = err
		return
	}
	m.ens = ens
	m.viewport = viz.Viewport{}
	m.t = 0
	m.rHistory = m.rHistory[:0]
}

func (m Model) View() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n"
	}

	m.canvas.Clear()
	m.canvas.PlotSwarm(&m.viewport, m.ens.Oscillators())
	canvasView := viz.CanvasStyle.Render(m.canvas.String())

	coherence, psi := m.ens.OrderParameter()

	var stats strings.Builder
	status := viz.StatusRunning.Render("RUNNING")
	if !m.running {
		status = viz.StatusCancelled.Render("PAUSED")
	}
	// The lantern blinks with the swarm's mean phase.
	stats.WriteString(viz.GlowStyle(psi).Render("●") + " " + status + "\n\n")

	if len(m.rHistory) > 1 {
		graph := asciigraph.Plot(m.rHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("order parameter"))
		stats.WriteString(viz.GraphStyle.Render(graph) + "\n\n")
	}

	stats.WriteString(viz.LabelStyle.Render("Time") + viz.ValueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	stats.WriteString(viz.LabelStyle.Render("Fireflies") + viz.ValueStyle.Render(fmt.Sprintf("%d", m.ens.Size())) + "\n")
	stats.WriteString(viz.LabelStyle.Render("Coupling") + viz.ValueStyle.Render(fmt.Sprintf("%.2f", m.ens.Coupling())) + "\n")
	stats.WriteString(viz.LabelStyle.Render("Sync") + viz.ValueStyle.Render(fmt.Sprintf("%s %.3f", viz.CoherenceBar(coherence, 16), coherence)) + "\n")
	stats.WriteString(viz.LabelStyle.Render("Backend") + viz.ValueStyle.Render(compute.GetBackend().Name()) + "\n")

	if m.showHelp {
		stats.WriteString(viz.HelpStyle.Render("\nSP:Pause R:Reset Q:Quit\n↑↓:Coupling ?:Help"))
	} else {
		stats.WriteString(viz.HelpStyle.Render("\n?:Help"))
	}

	header := viz.HeaderStyle.Render("FIRESYNC") + "\n"
	body := joinHorizontal(canvasView, viz.StatsStyle.Render(stats.String()))
	return header + body
}

// joinHorizontal pads two multi-line blocks side by side.
func joinHorizontal(left, right string) string {
	ll := strings.Split(left, "\n")
	rl := strings.Split(right, "\n")

	leftWidth := 0
	for _, l := range ll {
		if n := len([]rune(l)); n > leftWidth {
			leftWidth = n
		}
	}

	rows := len(ll)
	if len(rl) > rows {
		rows = len(rl)
	}

	var b strings.Builder
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(ll) {
			l = ll[i]
		}
		if i < len(rl) {
			r = rl[i]
		}
		b.WriteString(l + strings.Repeat(" ", leftWidth-len([]rune(l))) + r + "\n")
	}
	return b.String()
}

// RunInteractive starts the live TUI and blocks until the user quits.
func RunInteractive(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
