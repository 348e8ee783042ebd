package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/skalas/pidlab/internal/pid"
	"github.com/skalas/pidlab/internal/sim"
)

const historyCapacity = 600

type TickMsg time.Time

// Model steps the closed loop at the frame tick and renders the process
// variable history with live gain tuning.
type Model struct {
	ctrl     *pid.Controller
	actuator sim.Actuator

	gains     pid.Gains
	setpoint  float64
	initialPV float64

	pv      float64
	lastU   float64
	lastErr float64
	t       float64
	fps     int

	running    bool
	pvHistory  []float64
	errHistory []float64
	paramKeys  []string
	selected   int
}

func NewModel(ctrl *pid.Controller, actuator sim.Actuator, initialPV float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	setpoint, _ := ctrl.Setpoint()
	return Model{
		ctrl:       ctrl,
		actuator:   actuator,
		gains:      ctrl.Gains(),
		setpoint:   setpoint,
		initialPV:  initialPV,
		pv:         initialPV,
		fps:        fps,
		running:    true,
		pvHistory:  make([]float64, 0, historyCapacity),
		errHistory: make([]float64, 0, historyCapacity),
		paramKeys:  []string{"Kp", "Ki", "Kd", "Setpoint"},
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(m.paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the loop by one controller/actuator round trip.
func (m *Model) step() {
	u, errVal, err := m.ctrl.Output(m.pv)
	if err != nil {
		return
	}
	m.pv = m.actuator(m.pv, u)
	m.lastU = u
	m.lastErr = errVal
	m.t += 1.0 / float64(m.fps)

	m.pvHistory = append(m.pvHistory, m.pv)
	if len(m.pvHistory) > historyCapacity {
		m.pvHistory = m.pvHistory[1:]
	}
	m.errHistory = append(m.errHistory, errVal)
	if len(m.errHistory) > historyCapacity {
		m.errHistory = m.errHistory[1:]
	}
}

// reset rebuilds the controller so both accumulators restart cold.
func (m *Model) reset() {
	ctrl, err := pid.New(m.gains.P, m.gains.I, m.gains.D, pid.WithSetpoint(m.setpoint))
	if err != nil {
		return
	}
	m.ctrl = ctrl
	m.pv = m.initialPV
	m.t = 0
	m.lastU = 0
	m.lastErr = 0
	m.pvHistory = m.pvHistory[:0]
	m.errHistory = m.errHistory[:0]
}

func (m *Model) adjustParam(factor float64) {
	switch m.paramKeys[m.selected] {
	case "Kp":
		m.trySetGains(bump(m.gains.P, factor), m.gains.I, m.gains.D)
	case "Ki":
		m.trySetGains(m.gains.P, bump(m.gains.I, factor), m.gains.D)
	case "Kd":
		m.trySetGains(m.gains.P, m.gains.I, bump(m.gains.D, factor))
	case "Setpoint":
		m.setpoint = bump(m.setpoint, factor)
		m.ctrl.SetSetpoint(m.setpoint)
	}
}

// trySetGains keeps the previous triple when the bumped one is rejected.
func (m *Model) trySetGains(p, i, d float64) {
	if err := m.ctrl.SetGains(p, i, d); err != nil {
		return
	}
	m.gains = m.ctrl.Gains()
}

func bump(v, factor float64) float64 {
	if v == 0 {
		if factor > 1 {
			return 0.01
		}
		return 0
	}
	return v * factor
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("PID LAB") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.pvHistory) > 1 {
		chart := asciigraph.Plot(m.pvHistory,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("process variable"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.errHistory) > 1 {
		chart := asciigraph.Plot(m.errHistory,
			asciigraph.Height(5),
			asciigraph.Width(70),
			asciigraph.Caption("error"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("PV") + valueStyle.Render(fmt.Sprintf("%.4f", m.pv)) + "\n")
	s.WriteString(labelStyle.Render("Output") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastU)) + "\n")
	s.WriteString(labelStyle.Render("Error") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastErr)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	values := []float64{m.gains.P, m.gains.I, m.gains.D, m.setpoint}
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-10s %.3f", k, values[i])
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit Tab:Select ↑↓:Tune"))
	return s.String()
}
