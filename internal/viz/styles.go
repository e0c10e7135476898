package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true).MarginBottom(1)
}

// Legend renders the trace key, dimming hidden traces.
func Legend(visible [traceCount]bool) string {
	names := [traceCount]string{tracePotential: "V", traceRe: "Re", traceIm: "Im", traceAbs: "|ψ|"}
	styles := CurrentTheme.traceStyles()
	muted := lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Strikethrough(true)

	parts := make([]string, 0, traceCount)
	for _, tr := range []int{traceRe, traceIm, traceAbs, tracePotential} {
		if visible[tr] {
			parts = append(parts, styles[tr].Render("━ "+names[tr]))
		} else {
			parts = append(parts, muted.Render("━ "+names[tr]))
		}
	}
	return strings.Join(parts, "  ")
}
