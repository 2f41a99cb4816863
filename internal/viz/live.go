// Package viz renders the running simulation in the terminal: a braille
// star-field canvas inside a bubbletea program with live diagnostics.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/gravity"
)

const (
	canvasWidth  = 80
	canvasHeight = 30

	historyCapacity = 300

	// exact energy is an O(n^2) sum; skip it for big fields
	energyMaxStars  = 2048
	energySampleGap = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	statsStyle  = lipgloss.NewStyle().Padding(0, 2)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives the live view: it owns the simulation and steps it once
// per frame while running.
type Model struct {
	sim     *gravity.Simulation
	canvas  *Canvas
	fps     int
	zoom    float32
	step    int
	running bool

	energyHistory []float64
}

func NewModel(sim *gravity.Simulation, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		sim:           sim,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		fps:           fps,
		zoom:          1,
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.zoom *= 1.25
		case "-":
			if m.zoom > 0.1 {
				m.zoom /= 1.25
			}
		}
		return m, nil

	case TickMsg:
		if m.running {
			m.sim.Step()
			m.step++
			m.sampleEnergy()
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Model) sampleEnergy() {
	if len(m.sim.Stars()) > energyMaxStars || m.step%energySampleGap != 0 {
		return
	}
	m.energyHistory = append(m.energyHistory, float64(m.sim.Energy()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// render projects the star positions onto the canvas. The visible
// square is the bounding region shrunk by the zoom factor.
func (m *Model) render() string {
	m.canvas.Clear()

	p := m.sim.Params()
	extent := p.Scale / m.zoom
	subW := float32(m.canvas.Width * 2)
	subH := float32(m.canvas.Height * 4)

	stars := m.sim.Stars()
	for i := range stars {
		pos := stars[i].Pos()
		x := (pos.X/extent + 0.5) * subW
		y := (pos.Y/extent + 0.5) * subH
		m.canvas.Set(int(x), int(y))
	}

	return m.canvas.String()
}

func (m Model) statsPanel() string {
	status := "running"
	if !m.running {
		status = "paused"
	}

	rows := []string{
		labelStyle.Render("status") + valueStyle.Render(status),
		labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d", m.step)),
		labelStyle.Render("stars") + valueStyle.Render(fmt.Sprintf("%d", len(m.sim.Stars()))),
		labelStyle.Render("in bounds") + valueStyle.Render(fmt.Sprintf("%d", m.sim.InBounds())),
		labelStyle.Render("zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.zoom)),
	}

	mom := m.sim.Momentum()
	rows = append(rows,
		labelStyle.Render("momentum")+valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", mom.X, mom.Y)))

	if n := len(m.energyHistory); n > 0 {
		rows = append(rows,
			labelStyle.Render("energy")+valueStyle.Render(fmt.Sprintf("%.4g", m.energyHistory[n-1])))
	}

	return statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) View() string {
	header := headerStyle.Render("gravsim")
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.render()),
		m.statsPanel(),
	)

	view := lipgloss.JoinVertical(lipgloss.Left, header, body)

	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.Caption("total energy"),
		)
		view = lipgloss.JoinVertical(lipgloss.Left, view, graphStyle.Render(graph))
	}

	return view + helpStyle.Render("\nspace pause · +/- zoom · q quit")
}

// RunLive blocks until the user quits the live view.
func RunLive(sim *gravity.Simulation, fps int) error {
	_, err := tea.NewProgram(NewModel(sim, fps)).Run()
	return err
}
