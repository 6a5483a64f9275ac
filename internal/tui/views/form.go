package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

// Form field indices.
const (
	FieldModel = iota
	FieldServers
	FieldWaiting
	FieldArrival
	FieldService
	FieldBufferQ
	FieldTimeT
	fieldCount
)

type formField struct {
	Label string
	Input textinput.Model
}

// FormView is the scenario entry form: model kind plus the queueing
// parameters. Optional thresholds are left blank when unused.
type FormView struct {
	Fields []formField
	Focus  int

	Width  int
	Height int
}

func NewFormView(kind string, servers, waiting int, arrival, service float64) FormView {
	m := FormView{Fields: make([]formField, fieldCount)}

	mk := func(idx int, label, placeholder, value string, width int) {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.SetValue(value)
		ti.Width = width
		m.Fields[idx] = formField{Label: label, Input: ti}
	}

	mk(FieldModel, "Model (finite/unbounded)", storage.KindUnbounded, kind, 12)
	mk(FieldServers, "Servers (c)", "2", strconv.Itoa(servers), 8)
	mk(FieldWaiting, "Waiting positions (K, finite only)", "0", strconv.Itoa(waiting), 8)
	mk(FieldArrival, "Arrival rate (λ)", "45", trimFloat(arrival), 12)
	mk(FieldService, "Service rate per server (μ)", "25", trimFloat(service), 12)
	mk(FieldBufferQ, "Queue threshold Q (optional)", "blank = off", "", 12)
	mk(FieldTimeT, "Wait threshold t (optional, unbounded)", "blank = off", "", 12)

	m.Fields[FieldModel].Input.Focus()
	m.Fields[FieldModel].Input.PromptStyle = styles.Active
	m.Fields[FieldModel].Input.TextStyle = styles.Active
	return m
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// LoadScenario pushes a stored scenario back into the form fields.
func (m *FormView) LoadScenario(item storage.HistoryItem) {
	set := func(idx int, v string) { m.Fields[idx].Input.SetValue(v) }

	set(FieldBufferQ, "")
	set(FieldTimeT, "")
	switch item.Kind {
	case storage.KindFinite:
		if item.Finite == nil {
			return
		}
		p := item.Finite
		set(FieldModel, storage.KindFinite)
		set(FieldServers, strconv.Itoa(p.Servers))
		set(FieldWaiting, strconv.Itoa(p.WaitingCapacity))
		set(FieldArrival, trimFloat(p.ArrivalRate))
		set(FieldService, trimFloat(p.ServiceRate))
		if p.BufferThreshold != nil {
			set(FieldBufferQ, strconv.Itoa(*p.BufferThreshold))
		}
	case storage.KindUnbounded:
		if item.Unbounded == nil {
			return
		}
		p := item.Unbounded
		set(FieldModel, storage.KindUnbounded)
		set(FieldServers, strconv.Itoa(p.Servers))
		set(FieldArrival, trimFloat(p.ArrivalRate))
		set(FieldService, trimFloat(p.ServiceRate))
		if p.BufferThreshold != nil {
			set(FieldBufferQ, strconv.Itoa(*p.BufferThreshold))
		}
		if p.TimeThreshold != nil {
			set(FieldTimeT, trimFloat(*p.TimeThreshold))
		}
	}
}

// Scenario parses the form into a scenario ready for evaluation. The
// returned item has no metrics yet.
func (m FormView) Scenario() (storage.HistoryItem, error) {
	var item storage.HistoryItem

	kind := strings.TrimSpace(m.Fields[FieldModel].Input.Value())
	servers, err := strconv.Atoi(strings.TrimSpace(m.Fields[FieldServers].Input.Value()))
	if err != nil {
		return item, fmt.Errorf("servers: %q is not an integer", m.Fields[FieldServers].Input.Value())
	}
	arrival, err := strconv.ParseFloat(strings.TrimSpace(m.Fields[FieldArrival].Input.Value()), 64)
	if err != nil {
		return item, fmt.Errorf("arrival rate: %q is not a number", m.Fields[FieldArrival].Input.Value())
	}
	service, err := strconv.ParseFloat(strings.TrimSpace(m.Fields[FieldService].Input.Value()), 64)
	if err != nil {
		return item, fmt.Errorf("service rate: %q is not a number", m.Fields[FieldService].Input.Value())
	}

	var bufferQ *int
	if s := strings.TrimSpace(m.Fields[FieldBufferQ].Input.Value()); s != "" {
		q, err := strconv.Atoi(s)
		if err != nil {
			return item, fmt.Errorf("queue threshold: %q is not an integer", s)
		}
		bufferQ = &q
	}

	switch kind {
	case storage.KindFinite:
		waiting, err := strconv.Atoi(strings.TrimSpace(m.Fields[FieldWaiting].Input.Value()))
		if err != nil {
			return item, fmt.Errorf("waiting positions: %q is not an integer", m.Fields[FieldWaiting].Input.Value())
		}
		item.Kind = storage.KindFinite
		item.Finite = &queueing.FiniteParams{
			Servers:         servers,
			WaitingCapacity: waiting,
			ArrivalRate:     arrival,
			ServiceRate:     service,
			BufferThreshold: bufferQ,
		}
	case storage.KindUnbounded:
		var timeT *float64
		if s := strings.TrimSpace(m.Fields[FieldTimeT].Input.Value()); s != "" {
			t, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return item, fmt.Errorf("wait threshold: %q is not a number", s)
			}
			timeT = &t
		}
		item.Kind = storage.KindUnbounded
		item.Unbounded = &queueing.UnboundedParams{
			Servers:         servers,
			ArrivalRate:     arrival,
			ServiceRate:     service,
			BufferThreshold: bufferQ,
			TimeThreshold:   timeT,
		}
	default:
		return item, fmt.Errorf("model: %q, want %q or %q", kind, storage.KindFinite, storage.KindUnbounded)
	}

	return item, nil
}

func (m FormView) GetHelp() string {
	switch m.Focus {
	case FieldModel:
		return "Which system to evaluate.\n• [finite]: M/M/c/K — capacity capped at c+K, excess arrivals are blocked.\n• [unbounded]: M/M/c — unlimited waiting room, requires λ < c·μ.\n\nPress [Space] to toggle."
	case FieldServers:
		return "Number of parallel servers (c).\nMust be at least 1."
	case FieldWaiting:
		return "Waiting positions beyond the servers (K).\nOnly the finite model uses this; total capacity is c + K."
	case FieldArrival:
		return "Mean arrival rate λ (customers per time unit)."
	case FieldService:
		return "Mean service rate μ per server (customers per time unit).\nTraffic intensity ρ = λ / (c·μ)."
	case FieldBufferQ:
		return "Optional queue-length threshold Q.\nWhen set, the result includes P(queue length > Q).\nLeave blank to skip."
	case FieldTimeT:
		return "Optional wait-time threshold t (unbounded model only).\nWhen set, the result includes P(wait > t).\nLeave blank to skip."
	}
	return ""
}

func (m FormView) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormView) Update(msg tea.Msg) (FormView, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			s := msg.String()
			if s == "up" || s == "shift+tab" {
				m.Focus--
			} else {
				m.Focus++
			}
			if m.Focus > fieldCount-1 {
				m.Focus = 0
			} else if m.Focus < 0 {
				m.Focus = fieldCount - 1
			}

			for i := range m.Fields {
				if i == m.Focus {
					m.Fields[i].Input.Focus()
					m.Fields[i].Input.PromptStyle = styles.Active
					m.Fields[i].Input.TextStyle = styles.Active
				} else {
					m.Fields[i].Input.Blur()
					m.Fields[i].Input.PromptStyle = lipgloss.NewStyle()
					m.Fields[i].Input.TextStyle = lipgloss.NewStyle()
				}
			}
			return m, nil

		case " ":
			// Space toggles the model kind when that field is focused.
			if m.Focus == FieldModel {
				if m.Fields[FieldModel].Input.Value() == storage.KindFinite {
					m.Fields[FieldModel].Input.SetValue(storage.KindUnbounded)
				} else {
					m.Fields[FieldModel].Input.SetValue(storage.KindFinite)
				}
				return m, nil
			}
		}
	}

	for i := range m.Fields {
		m.Fields[i].Input, cmd = m.Fields[i].Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m FormView) View() string {
	kind := m.Fields[FieldModel].Input.Value()

	inputCol := strings.Builder{}
	inputCol.WriteString("\n")

	render := func(idx int) {
		inputCol.WriteString(styles.Subtle.Render(m.Fields[idx].Label))
		inputCol.WriteString("\n")
		inputCol.WriteString(m.Fields[idx].Input.View())
		inputCol.WriteString("\n\n")
	}

	render(FieldModel)
	render(FieldServers)
	if kind == storage.KindFinite {
		render(FieldWaiting)
	}
	render(FieldArrival)
	render(FieldService)
	render(FieldBufferQ)
	if kind == storage.KindUnbounded {
		render(FieldTimeT)
	}
	inputCol.WriteString(styles.Active.Render("[Enter] Evaluate"))

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.ColorBorder).
		Padding(1, 2).
		Width(46)

	help := styles.Subtle.Bold(true).Render("Information") + "\n\n" + styles.Text.Render(m.GetHelp())

	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(46).Render(inputCol.String()),
		helpBox.Render(help),
	)
}
