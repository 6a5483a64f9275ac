package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/report"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

// ResultsView shows the metrics of the last evaluated scenario next to the
// state-probability distribution (finite model only).
type ResultsView struct {
	Item  *storage.HistoryItem
	Probs []float64 // finite model state distribution, nil otherwise
	Err   error

	Width  int
	Height int
}

func NewResultsView() ResultsView {
	return ResultsView{}
}

// SetScenario installs an evaluated scenario, deriving the distribution
// chart data for finite systems.
func (m *ResultsView) SetScenario(item storage.HistoryItem) {
	m.Item = &item
	m.Err = nil
	m.Probs = nil
	if item.Kind == storage.KindFinite && item.Finite != nil {
		p := item.Finite
		probs, err := queueing.StateProbabilities(p.Servers, p.WaitingCapacity, p.ArrivalRate, p.ServiceRate)
		if err == nil {
			m.Probs = probs
		}
	}
}

// SetError shows a model error instead of metrics.
func (m *ResultsView) SetError(err error) {
	m.Item = nil
	m.Probs = nil
	m.Err = err
}

func (m ResultsView) Init() tea.Cmd {
	return nil
}

func (m ResultsView) Update(msg tea.Msg) (ResultsView, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = msg.Width
		m.Height = msg.Height
	}
	return m, nil
}

func (m ResultsView) View() string {
	if m.Err != nil {
		return styles.Title.Render("Evaluation failed") + "\n\n" + report.RenderError(m.Err)
	}
	if m.Item == nil {
		return styles.Subtle.Render("No evaluation yet.\nFill in the form and press [Enter].")
	}

	left := report.Render(m.title(), m.Item.Metrics)

	if m.Probs == nil {
		return left
	}

	// Cap the chart at 20 states so huge waiting rooms stay readable.
	probs := m.Probs
	truncated := false
	if len(probs) > 20 {
		probs = probs[:20]
		truncated = true
	}
	chart := strings.Builder{}
	chart.WriteString(styles.Active.Render("State distribution P(n)"))
	chart.WriteString("\n")
	chart.WriteString(report.Chart(probs, 24))
	if truncated {
		chart.WriteString("\n")
		chart.WriteString(styles.Subtle.Render(fmt.Sprintf("… %d more states", len(m.Probs)-20)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, styles.Box.Render(chart.String()))
}

func (m ResultsView) title() string {
	switch m.Item.Kind {
	case storage.KindFinite:
		p := m.Item.Finite
		return fmt.Sprintf("M/M/%d/%d  λ=%g μ=%g  ρ=%.3f",
			p.Servers, p.Servers+p.WaitingCapacity, p.ArrivalRate, p.ServiceRate, p.TrafficIntensity())
	case storage.KindUnbounded:
		p := m.Item.Unbounded
		return fmt.Sprintf("M/M/%d  λ=%g μ=%g  ρ=%.3f",
			p.Servers, p.ArrivalRate, p.ServiceRate, p.TrafficIntensity())
	}
	return "Results"
}
