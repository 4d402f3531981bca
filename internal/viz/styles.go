package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	CanvasStyle = lipgloss.NewStyle().Padding(1, 2)
	StatsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	GraphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	StatusRunning   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusCancelled = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))

	// Firefly brightness ramp, dim to lit.
	glowRamp = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("58")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("100")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("142")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("184")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
)

// GlowStyle picks a brightness style for a firefly from its phase: full
// brightness at cos(phase) = 1, dark at the opposite pole.
func GlowStyle(phase float64) lipgloss.Style {
	brightness := (math.Cos(phase) + 1) / 2
	idx := int(brightness * float64(len(glowRamp)))
	if idx >= len(glowRamp) {
		idx = len(glowRamp) - 1
	}
	return glowRamp[idx]
}

// CoherenceBar renders the order parameter as a fixed-width meter.
func CoherenceBar(r float64, width int) string {
	filled := int(r * float64(width))
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
