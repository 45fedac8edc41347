// Package ui is a terminal browser for collected query metadata: one tab
// per executed query, a table of per-column statistics and the discovered
// functional dependencies underneath.
package ui

import (
	"fmt"
	"strings"

	"piggydb/pkg/execution"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// QueryResult pairs an executed query's label with its result and report.
type QueryResult struct {
	Name   string
	Result *execution.Result
}

// Model represents the application state.
type Model struct {
	results  []QueryResult
	selected int

	statsTable table.Model
	help       help.Model
	keys       keyMap

	width    int
	height   int
	showHelp bool
}

// NewModel creates the browser over the given query results.
func NewModel(results []QueryResult) Model {
	t := table.New(
		table.WithColumns(statsColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	m := Model{
		results:    results,
		statsTable: t,
		help:       help.New(),
		keys:       keys,
	}
	m.refreshTable()
	return m
}

func statsColumns() []table.Column {
	return []table.Column{
		{Title: "Column", Width: 20},
		{Title: "Distinct", Width: 10},
		{Title: "Min", Width: 12},
		{Title: "Max", Width: 12},
		{Title: "Numeric", Width: 8},
	}
}

func (m *Model) refreshTable() {
	if len(m.results) == 0 {
		m.statsTable.SetRows(nil)
		return
	}

	report := m.results[m.selected].Result.Report
	rows := make([]table.Row, 0, len(report.Columns))
	for _, col := range report.Columns {
		min, max := "-", "-"
		numeric := "no"
		if col.IsNumeric {
			min = fmt.Sprintf("%d", col.Min)
			max = fmt.Sprintf("%d", col.Max)
			numeric = "yes"
		}
		rows = append(rows, table.Row{
			col.Name,
			fmt.Sprintf("%d", col.Distinct),
			min,
			max,
			numeric,
		})
	}
	m.statsTable.SetRows(rows)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp

		case key.Matches(msg, m.keys.NextQuery):
			if len(m.results) > 0 {
				m.selected = (m.selected + 1) % len(m.results)
				m.refreshTable()
			}

		case key.Matches(msg, m.keys.PrevQuery):
			if len(m.results) > 0 {
				m.selected = (m.selected - 1 + len(m.results)) % len(m.results)
				m.refreshTable()
			}
		}
	}

	var cmd tea.Cmd
	m.statsTable, cmd = m.statsTable.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("piggydb · query metadata"))
	b.WriteString("\n")

	if len(m.results) == 0 {
		b.WriteString(noFDStyle.Render("no queries executed"))
		return appStyle.Render(b.String())
	}

	current := m.results[m.selected]
	badge := queryBadgeStyle.Render(
		fmt.Sprintf("%d/%d", m.selected+1, len(m.results)))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, badge, current.Name))
	b.WriteString("\n\n")

	b.WriteString(m.statsTable.View())
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Functional dependencies"))
	b.WriteString("\n")
	report := current.Result.Report
	if len(report.FDs) == 0 {
		b.WriteString(noFDStyle.Render("none discovered"))
		b.WriteString("\n")
	} else {
		for _, fd := range report.FDs {
			b.WriteString(fdStyle.Render(
				fmt.Sprintf("%s → %s", fd.Determinant, fd.Dependent)))
			b.WriteString("\n")
		}
	}

	status := fmt.Sprintf("%d rows · %d columns · %d dependencies",
		len(current.Result.Rows), len(report.Columns), len(report.FDs))
	b.WriteString(statusBarStyle.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return appStyle.Render(b.String())
}
