package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pairforce/internal/md"
	"github.com/san-kum/pairforce/internal/sim"
)

const (
	canvasCols      = 60
	canvasRows      = 24
	historyCapacity = 600
)

type TickMsg time.Time

// Model holds the stepping simulation and the terminal view state.
type Model struct {
	stepper      *sim.Stepper
	sys          *md.System
	title        string
	stepsPerTick int

	canvas   *Canvas
	proj     *Projection
	themeIdx int
	styles   styleSet

	energy   []float64
	running  bool
	showHelp bool
	err      error
}

// NewModel wraps a runner for interactive stepping, advancing
// stepsPerTick velocity Verlet steps of size dt per frame.
func NewModel(runner *sim.Runner, dt float64, stepsPerTick int) (Model, error) {
	stepper, err := runner.Stepper(dt)
	if err != nil {
		return Model{}, err
	}
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	force := runner.Force()
	return Model{
		stepper:      stepper,
		sys:          runner.System(),
		title:        fmt.Sprintf("%s · %s", force.Name(), force.Mode()),
		stepsPerTick: stepsPerTick,
		canvas:       NewCanvas(canvasCols, canvasRows),
		proj:         NewProjection(),
		styles:       stylesFor(Themes[0]),
		energy:       make([]float64, 0, historyCapacity),
		running:      true,
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			if err := m.stepper.Reset(); err == nil {
				m.energy = m.energy[:0]
				m.err = nil
				m.running = true
			}
		case "x":
			m.proj.RotatePitch(0.1)
		case "X":
			m.proj.RotatePitch(-0.1)
		case "y":
			m.proj.RotateYaw(0.1)
		case "Y":
			m.proj.RotateYaw(-0.1)
		case "+", "=":
			m.proj.ZoomIn()
		case "-", "_":
			m.proj.ZoomOut()
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
			m.styles = stylesFor(Themes[m.themeIdx])
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			for i := 0; i < m.stepsPerTick; i++ {
				if err := m.stepper.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}
			m.energy = append(m.energy, m.stepper.Total())
			if len(m.energy) > historyCapacity {
				m.energy = m.energy[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

// View renders the particle canvas next to the stats panel.
func (m Model) View() string {
	m.canvas.Clear()
	m.proj.Render(m.canvas, m.sys)
	canvasView := m.styles.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.header.Render(strings.ToUpper(m.title)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(m.styles.paused.Render("STOPPED "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(m.styles.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(m.styles.paused.Render("PAUSED") + "\n\n")
	}
	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Total energy"))
		s.WriteString(m.styles.graph.Render(chart) + "\n\n")
	}
	m.statRow(&s, "Time", fmt.Sprintf("%.3f", m.stepper.Time()))
	m.statRow(&s, "Steps", fmt.Sprintf("%d", m.stepper.Steps()))
	m.statRow(&s, "Particles", fmt.Sprintf("%d", m.sys.N()))
	m.statRow(&s, "Potential", fmt.Sprintf("%+.4f", m.stepper.Potential()))
	m.statRow(&s, "Kinetic", fmt.Sprintf("%+.4f", m.stepper.Kinetic()))
	m.statRow(&s, "Total", fmt.Sprintf("%+.4f", m.stepper.Total()))
	m.statRow(&s, "T", fmt.Sprintf("%.4f", m.stepper.Temperature()))
	m.statRow(&s, "Drift", fmt.Sprintf("%.2e", m.stepper.Drift()))
	m.statRow(&s, "Rebuilds", fmt.Sprintf("%d", m.stepper.Rebuilds()))
	s.WriteString(m.styles.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nX/Y:Rotate +/-:Zoom\nT:Theme ?:Help"))
	statsView := m.styles.stats.Render(s.String())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) statRow(s *strings.Builder, label, value string) {
	s.WriteString(m.styles.label.Render(label) + m.styles.value.Render(value) + "\n")
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset to initial state   ║
║  Q        - Quit                     ║
║  X/x      - Pitch camera up/down     ║
║  Y/y      - Yaw camera left/right    ║
║  +/-      - Zoom in/out              ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
