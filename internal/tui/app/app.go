package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
	"github.com/daniela-hl/queue-sim/internal/tui/views"
)

type ClearStatusMsg struct{}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// View Enum
type ViewID int

const (
	ViewForm ViewID = iota
	ViewResults
	ViewHistory
)

type Model struct {
	Store *storage.Store

	// Last evaluated scenario, nil until the first evaluation succeeds.
	Current *storage.HistoryItem

	Width  int
	Height int

	CurrentView ViewID
	MenuItems   []string

	FormView    views.FormView
	ResultsView views.ResultsView
	HistoryView views.HistoryView

	StatusMsg string
}

// NewModel builds the app shell. The form is pre-filled with defaults
// (typically from the config file); store may be nil, disabling history.
func NewModel(store *storage.Store, kind string, servers, waiting int, arrival, service float64) Model {
	return Model{
		Store:       store,
		CurrentView: ViewForm,
		MenuItems:   []string{"[1] Scenario", "[2] Results", "[3] History"},
		FormView:    views.NewFormView(kind, servers, waiting, arrival, service),
		ResultsView: views.NewResultsView(),
		HistoryView: views.NewHistoryView(store),
	}
}

func (m Model) Init() tea.Cmd {
	return m.FormView.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q":
			return m, tea.Quit

		case "ctrl+h":
			m.HistoryView.Refresh()
			m.CurrentView = ViewHistory
			return m, nil

		case "ctrl+right":
			m.CurrentView++
			if m.CurrentView > ViewHistory {
				m.CurrentView = ViewForm
			}
			return m, nil
		case "ctrl+left":
			m.CurrentView--
			if m.CurrentView < ViewForm {
				m.CurrentView = ViewHistory
			}
			return m, nil

		case "enter":
			if m.CurrentView == ViewForm {
				m.evaluate()
				return m, nil
			}

		case "ctrl+s":
			if m.Current != nil && m.Store != nil {
				if _, err := m.Store.Save(*m.Current); err != nil {
					m.StatusMsg = fmt.Sprintf("Save failed: %v", err)
				} else {
					m.StatusMsg = "Scenario saved to history."
					m.HistoryView.Refresh()
				}
				cmds = append(cmds, clearStatusCmd())
				return m, tea.Batch(cmds...)
			}

		case "ctrl+p":
			if m.Current != nil {
				base := fmt.Sprintf("queue_sim_%s", time.Now().Format("20060102-150405"))
				if err := exportScenario(*m.Current, base); err != nil {
					m.StatusMsg = fmt.Sprintf("Export failed: %v", err)
				} else {
					m.StatusMsg = fmt.Sprintf("Exported to %s.{csv,json}", base)
				}
				cmds = append(cmds, clearStatusCmd())
				return m, tea.Batch(cmds...)
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		contentHeight := m.Height - 7

		m.FormView.Width = m.Width
		m.FormView.Height = contentHeight

		updatedResults, _ := m.ResultsView.Update(msg)
		m.ResultsView = updatedResults
		updatedHist, _ := m.HistoryView.Update(msg)
		m.HistoryView = updatedHist
	}

	// Forward everything else to the active view so bubbles internals
	// (input blink, table navigation) keep working.
	var defaultCmd tea.Cmd
	switch m.CurrentView {
	case ViewForm:
		m.FormView, defaultCmd = m.FormView.Update(msg)
	case ViewResults:
		m.ResultsView, defaultCmd = m.ResultsView.Update(msg)
	case ViewHistory:
		m.HistoryView, defaultCmd = m.HistoryView.Update(msg)
		if m.HistoryView.Selected != nil {
			m.FormView.LoadScenario(*m.HistoryView.Selected)
			m.HistoryView.Selected = nil
			m.CurrentView = ViewForm
		}
	}
	cmds = append(cmds, defaultCmd)

	return m, tea.Batch(cmds...)
}

// evaluate parses the form, runs the matching model, and switches to the
// results view (also on error, which the results view renders).
func (m *Model) evaluate() {
	item, err := m.FormView.Scenario()
	if err != nil {
		m.ResultsView.SetError(err)
		m.Current = nil
		m.CurrentView = ViewResults
		return
	}

	switch item.Kind {
	case storage.KindFinite:
		item.Metrics, err = queueing.EvaluateFinite(*item.Finite)
	case storage.KindUnbounded:
		item.Metrics, err = queueing.EvaluateUnbounded(*item.Unbounded)
	}
	if err != nil {
		m.ResultsView.SetError(err)
		m.Current = nil
	} else {
		m.ResultsView.SetScenario(item)
		m.Current = &item
	}
	m.CurrentView = ViewResults
}

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	nav := strings.Builder{}
	for i, item := range m.MenuItems {
		if ViewID(i) == m.CurrentView {
			nav.WriteString(styles.TabActive.Render(item))
		} else {
			nav.WriteString(styles.TabBase.Render(item))
		}
	}
	navBar := styles.FooterBase.Width(m.Width).Render(nav.String())

	contentStr := ""
	switch m.CurrentView {
	case ViewForm:
		contentStr = m.FormView.View()
	case ViewResults:
		contentStr = m.ResultsView.View()
	case ViewHistory:
		contentStr = m.HistoryView.View()
	}
	content := styles.Panel.Width(m.Width - 2).Height(m.Height - 6).Render(contentStr)

	keys1 := []string{
		styles.RenderKey("Ctrl+<->", "View"),
		styles.RenderKey("Tab", "Field"),
		styles.RenderKey("Enter", "Evaluate"),
	}
	keys2 := []string{
		styles.RenderKey("Ctrl+S", "Save"),
		styles.RenderKey("Ctrl+P", "Export"),
		styles.RenderKey("Ctrl+H", "History"),
		styles.RenderKey("Ctrl+Q", "Quit"),
	}

	helpRow1 := styles.FooterBase.Width(m.Width).Render(strings.Join(keys1, "   "))
	helpRow2 := styles.FooterBase.Width(m.Width).Render(strings.Join(keys2, "   "))
	footer := lipgloss.JoinVertical(lipgloss.Left, helpRow1, helpRow2)

	if m.StatusMsg != "" {
		status := styles.Box.BorderForeground(styles.ColorHighlight).Render(m.StatusMsg)
		return lipgloss.JoinVertical(lipgloss.Left, navBar, content, status, footer)
	}

	return lipgloss.JoinVertical(lipgloss.Left, navBar, content, footer)
}
