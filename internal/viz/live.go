package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/morphogen/internal/analysis"
	"github.com/san-kum/morphogen/internal/ring"
)

const chartHeight = 8

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model animates a solved ring by querying the solver at advancing times.
// The solver itself is never mutated; only the playback clock moves.
type Model struct {
	solver   *ring.Solver
	dominant analysis.ModeRate
	t        float64
	dt       float64
	speed    float64
	running  bool
	prof     ring.Profile
	err      error
}

func NewModel(solver *ring.Solver, dt float64) Model {
	d := analysis.Dispersion(solver.Params(), solver.N())

	m := Model{
		solver:   solver,
		dominant: d.Dominant(),
		dt:       dt,
		speed:    1.0,
		running:  true,
	}
	m.prof, m.err = solver.Evaluate(0)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.t = 0
			m.err = nil
			m.prof, m.err = m.solver.Evaluate(0)
			m.running = true
		case "+", "=":
			m.speed *= 2
		case "-", "_":
			m.speed /= 2
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.t += m.dt * m.speed
			prof, err := m.solver.Evaluate(m.t)
			if err != nil {
				m.err = err
				m.running = false
			} else {
				m.prof = prof
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("morphogen ring  N=%d", m.solver.N()))

	var body string
	if m.err != nil {
		body = errorStyle.Render(fmt.Sprintf("stopped: %v", m.err))
	} else if len(m.prof.X) > 1 {
		xg := asciigraph.Plot(m.prof.X,
			asciigraph.Height(chartHeight),
			asciigraph.Width(2*len(m.prof.X)),
			asciigraph.Caption("X morphogen"))
		yg := asciigraph.Plot(m.prof.Y,
			asciigraph.Height(chartHeight),
			asciigraph.Width(2*len(m.prof.Y)),
			asciigraph.Caption("Y morphogen"))
		body = graphStyle.Render(xg + "\n\n" + yg)
	} else if len(m.prof.X) == 1 {
		body = graphStyle.Render(fmt.Sprintf("x = %.6f    y = %.6f", m.prof.X[0], m.prof.Y[0]))
	}

	stats := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("t")+valueStyle.Render(fmt.Sprintf("%.3f", m.t)),
		labelStyle.Render("speed")+valueStyle.Render(fmt.Sprintf("%.2fx", m.speed)),
		labelStyle.Render("dominant")+valueStyle.Render(
			fmt.Sprintf("mode %d (%s)", m.dominant.Mode, m.dominant.Class)),
		labelStyle.Render("growth")+valueStyle.Render(
			fmt.Sprintf("%.4f%+.4fi", real(m.dominant.Rate), imag(m.dominant.Rate))),
	)

	help := helpStyle.Render("space pause  r reset  +/- speed  q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, stats, help)
}

// RunLive starts the live view and blocks until the user quits.
func RunLive(solver *ring.Solver, dt float64) error {
	p := tea.NewProgram(NewModel(solver, dt))
	_, err := p.Run()
	return err
}
