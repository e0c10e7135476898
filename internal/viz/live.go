package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/qwave/internal/config"
	"github.com/san-kum/qwave/internal/experiment"
	"github.com/san-kum/qwave/internal/export"
	"github.com/san-kum/qwave/internal/integrators"
	"github.com/san-kum/qwave/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	// The Re/Im traces are multiplied by 0.1·10^(scale/100).
	defaultScale = 100
	scaleStep    = 10
	maxScale     = 200
)

// Trace ids, in drawing order.
const (
	tracePotential = iota
	traceRe
	traceIm
	traceAbs
	traceCount
)

type TickMsg time.Time

// Model drives an engine and draws it.
type Model struct {
	engine        *sim.Engine
	cfg           *config.Config
	registry      *experiment.Registry
	stepsPerFrame int
	width, height int
	canvas        *Canvas
	running       bool
	scale         int
	visible       [traceCount]bool
	paramKeys     []string
	selected      int
	energyHistory []float64
	status        string
	err           error
	showHelp      bool
}

// NewModel wraps an engine built from cfg. Reset resamples cfg's
// generators through registry.
func NewModel(engine *sim.Engine, cfg *config.Config, registry *experiment.Registry) Model {
	if registry == nil {
		registry = experiment.NewRegistry()
	}
	spf := cfg.StepsPerFrame
	if spf < 1 {
		spf = config.DefaultStepsPerFrame
	}
	return Model{
		engine:        engine,
		cfg:           cfg,
		registry:      registry,
		stepsPerFrame: spf,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		running:       true,
		scale:         defaultScale,
		visible:       [traceCount]bool{true, true, true, true},
		paramKeys:     []string{"dt", "m"},
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the engine.
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
		case "m":
			m.cycleMethod()
		case "+", "=":
			m.scale = min(m.scale+scaleStep, maxScale)
		case "-", "_":
			m.scale = max(m.scale-scaleStep, 0)
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "1", "2", "3", "4":
			tr := [...]int{traceRe, traceIm, traceAbs, tracePotential}[msg.String()[0]-'1']
			m.visible[tr] = !m.visible[tr]
		case "s":
			m.saveSnapshot()
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		if w := msg.Width - 50; w > 20 {
			m.width = w
			m.canvas = NewCanvas(m.width, m.height)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// step advances one frame. A failed step pauses the view.
func (m *Model) step() {
	if err := m.engine.Advance(m.stepsPerFrame); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.energyHistory = append(m.energyHistory, m.engine.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.energyHistory = m.energyHistory[:0]
	m.err = nil
	if err := experiment.Apply(m.engine, m.cfg, m.registry); err != nil {
		m.err = err
		return
	}
	m.status = "reset"
}

func (m *Model) cycleMethod() {
	next := integrators.Method((int(m.engine.Method()) + 1) % len(integrators.All()))
	if err := m.engine.SetMethodID(next); err != nil {
		m.err = err
		return
	}
	m.energyHistory = m.energyHistory[:0]
	m.status = "method " + next.String()
}

func (m *Model) adjustParam(factor float64) {
	var err error
	switch m.paramKeys[m.selected] {
	case "dt":
		err = m.engine.SetDt(m.engine.Dt() * factor)
	case "m":
		err = m.engine.SetMass(m.engine.Mass() * factor)
	}
	if err != nil {
		m.err = err
	}
}

func (m *Model) saveSnapshot() {
	path := fmt.Sprintf("qwave-%06d.json", m.engine.Steps())
	if err := export.ExportJSON(path, export.Capture(m.engine)); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + path
}

// ScaleFactor is the current Re/Im multiplier.
func (m Model) ScaleFactor() float64 {
	return 0.1 * math.Pow(10, float64(m.scale)/100)
}

// Readout is the parameter line shown under the plot.
func (m Model) Readout() string {
	return fmt.Sprintf("m=%g hbar=%g dt=%g", m.engine.Mass(), m.engine.Hbar(), m.engine.Dt())
}

// draw plots the current state on the canvas.
func (m *Model) draw() {
	m.canvas.Clear()

	psi := m.engine.Wavefunction()
	abs := psi.Abs()
	peak := 0.0
	for _, a := range abs {
		peak = max(peak, a)
	}
	if peak == 0 || math.IsNaN(peak) {
		peak = 1
	}
	lo, hi := -1.1*peak, 1.1*peak

	if m.visible[tracePotential] {
		if v := m.displayPotential(); v != nil {
			m.canvas.PlotSeries(v, 0, 1, tracePotential)
		}
	}
	f := m.ScaleFactor()
	if m.visible[traceRe] {
		re := psi.Real()
		for i := range re {
			re[i] *= f
		}
		m.canvas.PlotSeries(re, lo, hi, traceRe)
	}
	if m.visible[traceIm] {
		im := psi.Imag()
		for i := range im {
			im[i] *= f
		}
		m.canvas.PlotSeries(im, lo, hi, traceIm)
	}
	if m.visible[traceAbs] {
		m.canvas.PlotSeries(abs, lo, hi, traceAbs)
	}
}

// displayPotential maps V to [0.05, 0.95], clipping at the truncation
// threshold so infinite walls do not flatten the rest. A flat potential
// is not drawn.
func (m *Model) displayPotential() []float64 {
	v := m.engine.Potential()
	capAt, capped := m.engine.InfAt()

	vlo, vhi := math.Inf(1), math.Inf(-1)
	walls := 0
	for _, x := range v {
		if capped && x >= capAt {
			walls++
			continue
		}
		vlo, vhi = min(vlo, x), max(vhi, x)
	}
	if walls == len(v) || (vhi == vlo && walls == 0) {
		return nil
	}
	if vhi == vlo {
		vhi = vlo + 1
	}

	out := make([]float64, len(v))
	for i, x := range v {
		if capped && x >= capAt {
			out[i] = 0.95
			continue
		}
		out[i] = 0.05 + 0.8*(x-vlo)/(vhi-vlo)
	}
	return out
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.Render(CurrentTheme.traceStyles()) + "\n" + Legend(m.visible))

	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.engine.Method().String())) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(StatusError.Render("ERROR") + "\n" + valueStyle.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.engine.Steps())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.6g", m.engine.Energy())) + "\n")
	s.WriteString(labelStyle.Render("Norm") + valueStyle.Render(fmt.Sprintf("%.12f", m.engine.Norm())) + "\n")
	s.WriteString(labelStyle.Render("Re/Im ×") + valueStyle.Render(fmt.Sprintf("%.3g", m.ScaleFactor())) + "\n")
	s.WriteString(labelStyle.Render("Params") + valueStyle.Render(m.Readout()) + "\n")

	s.WriteString("\nCONSTANTS\n")
	for i, k := range m.paramKeys {
		val := m.engine.Dt()
		if k == "m" {
			val = m.engine.Mass()
		}
		line := fmt.Sprintf("%-4s %.4g", k, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	if m.status != "" {
		s.WriteString("\n" + labelStyle.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset M:Method Q:Quit\n+/-:Scale Tab/↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset wavefunction       ║
║  M        - Cycle method             ║
║  + / -    - Scale Re/Im traces       ║
║  Tab      - Select dt or m           ║
║  Up/K     - Increase constant (+5%)  ║
║  Down/J   - Decrease constant (-5%)  ║
║  1 2 3 4  - Toggle Re Im |ψ| V       ║
║  S        - Save JSON snapshot       ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run opens the live view on engine until the user quits.
func Run(engine *sim.Engine, cfg *config.Config, registry *experiment.Registry) error {
	_, err := tea.NewProgram(NewModel(engine, cfg, registry), tea.WithAltScreen()).Run()
	return err
}
