package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daniela-hl/queue-sim/internal/queueing"
	"github.com/daniela-hl/queue-sim/internal/storage"
	"github.com/daniela-hl/queue-sim/internal/tui/styles"
)

type HistoryView struct {
	Store *storage.Store
	Table table.Model

	// Selected is set when the user picks a row; the app shell loads it
	// back into the form and clears it.
	Selected *storage.HistoryItem

	items []storage.HistoryItem

	Width  int
	Height int
}

func NewHistoryView(store *storage.Store) HistoryView {
	columns := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Model", Width: 10},
		{Title: "c", Width: 4},
		{Title: "K", Width: 4},
		{Title: "λ", Width: 10},
		{Title: "μ", Width: 10},
		{Title: "ρ", Width: 8},
		{Title: "Lq", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.ColorPrimary)
	s.Selected = s.Selected.
		Foreground(styles.ColorBg).
		Background(styles.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	m := HistoryView{Store: store, Table: t}
	m.Refresh()
	return m
}

func (m *HistoryView) Refresh() {
	if m.Store == nil {
		return
	}

	m.items = m.Store.List() // already newest-first
	rows := make([]table.Row, len(m.items))
	for i, item := range m.items {
		var c, k, lambda, mu, rho string
		switch {
		case item.Finite != nil:
			p := item.Finite
			c = fmt.Sprintf("%d", p.Servers)
			k = fmt.Sprintf("%d", p.WaitingCapacity)
			lambda = fmt.Sprintf("%g", p.ArrivalRate)
			mu = fmt.Sprintf("%g", p.ServiceRate)
			rho = fmt.Sprintf("%.3f", p.TrafficIntensity())
		case item.Unbounded != nil:
			p := item.Unbounded
			c = fmt.Sprintf("%d", p.Servers)
			k = "∞"
			lambda = fmt.Sprintf("%g", p.ArrivalRate)
			mu = fmt.Sprintf("%g", p.ServiceRate)
			rho = fmt.Sprintf("%.3f", p.TrafficIntensity())
		}
		rows[i] = table.Row{
			item.Timestamp.Format("2006-01-02 15:04:05"),
			item.Kind,
			c, k, lambda, mu, rho,
			fmt.Sprintf("%.3f", item.Metrics[queueing.MetricIi]),
		}
	}
	m.Table.SetRows(rows)
}

func (m HistoryView) Init() tea.Cmd {
	return nil
}

func (m HistoryView) Update(msg tea.Msg) (HistoryView, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Table.SetWidth(msg.Width - 4)
		m.Table.SetHeight(msg.Height - 6)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			idx := m.Table.Cursor()
			if idx >= 0 && idx < len(m.items) {
				item := m.items[idx]
				m.Selected = &item
				return m, nil
			}
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m HistoryView) View() string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render("📜 Past Evaluations"))
	s.WriteString("\n\n")

	if len(m.Table.Rows()) == 0 {
		s.WriteString(styles.Subtle.Render("No history yet.\nEvaluate a scenario and press Ctrl+S to save it."))
	} else {
		s.WriteString(styles.Box.Render(m.Table.View()))
	}
	s.WriteString("\n\n")
	s.WriteString(styles.Subtle.Render("[Enter] Load into form"))
	return s.String()
}

func (m HistoryView) GetSelectedItem() *storage.HistoryItem {
	idx := m.Table.Cursor()
	if idx >= 0 && idx < len(m.items) {
		return &m.items[idx]
	}
	return nil
}
