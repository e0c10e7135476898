package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/experiment"
)

var potentialInfo = map[string]string{
	"zero":                 "free particle",
	"infinite_square_well": "particle in a box",
	"finite_square_well":   "leaky box",
	"harmonic_oscillator":  "parabolic trap",
	"sine_double_well":     "tunnelling",
}

const (
	stateMenu = iota
	stateSim
)

type entry struct {
	group, preset string
}

type model struct {
	state, cursor int
	entries       []entry
	registry      *experiment.Registry
	liveModel     Model
	err           error
}

// NewInteractiveApp lists every preset; enter opens it in the live view.
func NewInteractiveApp(registry *experiment.Registry) *model {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	m := &model{state: stateMenu, registry: registry}
	for _, group := range config.PresetGroups() {
		for _, preset := range config.ListPresets(group) {
			m.entries = append(m.entries, entry{group, preset})
		}
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.menuKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m, m.start()
	}
	return m, nil
}

func (m *model) start() tea.Cmd {
	e := m.entries[m.cursor]
	cfg := config.GetPreset(e.group, e.preset)
	engine, err := experiment.Build(cfg, m.registry)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.liveModel = NewModel(engine, cfg, m.registry)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m model) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	b.WriteString("\n\n    " + h.Render("QWAVE") + "\n    " + sub.Render("1d wavefunction simulator") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		name := fmt.Sprintf("%-22s", e.group+"/"+e.preset)
		desc := potentialInfo[e.group]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(name), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(name), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + sub.Render(" navigate  ") + key.Render("enter") + sub.Render(" start  ") + key.Render("q") + sub.Render(" quit") + "\n")
	return b.String()
}

func RunInteractive(registry *experiment.Registry) error {
	_, err := tea.NewProgram(NewInteractiveApp(registry), tea.WithAltScreen()).Run()
	return err
}
