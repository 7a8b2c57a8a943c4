package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadflow/leadtop/internal/leads"
)

type SortBy int

const (
	SortScore SortBy = iota
	SortName
	SortStatus
)

func (s SortBy) String() string {
	switch s {
	case SortName:
		return "NAME"
	case SortStatus:
		return "STATUS"
	default:
		return "SCORE"
	}
}

type LeadsModel struct {
	table     table.Model
	width     int
	height    int
	leads     []leads.Lead
	visible   []leads.Lead
	maxRows   int
	sortBy    SortBy
	filter    string
	filtering bool
	textInput textinput.Model
	styles    Styles
}

func NewLeadsModel(maxRows int) LeadsModel {
	columns := []table.Column{
		{Title: "ID", Width: 7},
		{Title: "Name", Width: 16},
		{Title: "Status", Width: 10},
		{Title: "Score", Width: 5},
		{Title: "Company", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/"
	ti.CharLimit = 30
	ti.Width = 20

	m := LeadsModel{
		table:     t,
		maxRows:   maxRows,
		sortBy:    SortScore,
		textInput: ti,
	}
	m.SetStyles(NewStyles(false))
	return m
}

func (m LeadsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Filtering reports whether the filter prompt currently owns key input.
func (m LeadsModel) Filtering() bool {
	return m.filtering
}

func (m LeadsModel) Update(msg tea.Msg) (LeadsModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.filtering {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filter = m.textInput.Value()
				m.textInput.Blur()
				m.table.Focus()
				return m, nil
			}
		}
		m.textInput, cmd = m.textInput.Update(msg)
		m.filter = m.textInput.Value() // Live filter
		m.SetLeads(m.leads)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "/":
			m.filtering = true
			m.textInput.Focus()
			m.table.Blur()
			return m, textinput.Blink
		case "s":
			m.sortBy = (m.sortBy + 1) % 3
			m.SetLeads(m.leads)
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SetLeads applies the current filter and sort and refreshes the table rows.
func (m *LeadsModel) SetLeads(all []leads.Lead) {
	m.leads = all

	var filtered []leads.Lead
	if m.filter != "" {
		lowerFilter := strings.ToLower(m.filter)
		for _, l := range all {
			if strings.Contains(strings.ToLower(l.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(l.Company), lowerFilter) ||
				strings.Contains(strings.ToLower(l.Status), lowerFilter) ||
				strings.EqualFold(l.ID, m.filter) {
				filtered = append(filtered, l)
			}
		}
	} else {
		filtered = make([]leads.Lead, len(all))
		copy(filtered, all)
	}

	switch m.sortBy {
	case SortScore:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Score > filtered[j].Score
		})
	case SortName:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
		})
	case SortStatus:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Status < filtered[j].Status
		})
	}

	if m.maxRows > 0 && len(filtered) > m.maxRows {
		filtered = filtered[:m.maxRows]
	}
	m.visible = filtered

	rows := make([]table.Row, len(filtered))
	for i, l := range filtered {
		rows[i] = table.Row{
			l.ID,
			l.Name,
			l.Status,
			fmt.Sprintf("%d", l.Score),
			l.Company,
		}
	}
	m.table.SetRows(rows)
}

// Visible returns the rows currently shown, in display order.
func (m LeadsModel) Visible() []leads.Lead {
	return m.visible
}

// Selected returns the highlighted lead, if any.
func (m LeadsModel) Selected() (leads.Lead, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.visible) {
		return leads.Lead{}, false
	}
	return m.visible[i], true
}

func (m *LeadsModel) SetStyles(st Styles) {
	m.styles = st

	s := table.DefaultStyles()
	s.Header = s.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(st.Palette.Border).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(st.Palette.Background).
		Background(st.Palette.Foreground).
		Bold(false)
	m.table.SetStyles(s)
}

func (m *LeadsModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	// Header: 1, Newline: 1, Score bar: 1, Status line: 1
	tableHeight := h - 6
	if tableHeight < 1 {
		tableHeight = 1
	}
	m.table.SetHeight(tableHeight)

	cols := m.table.Columns()

	cols[0].Width = 7  // ID
	cols[1].Width = 16 // Name
	cols[2].Width = 10 // Status
	cols[3].Width = 5  // Score

	usedWidth := 7 + 16 + 10 + 5 + 10 // + padding
	remaining := w - usedWidth
	if remaining < 10 {
		remaining = 10
	}
	cols[4].Width = remaining
	m.table.SetColumns(cols)
}

func (m LeadsModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := m.styles.Panel
	if m.filter != "" && len(m.visible) == 0 {
		style = m.styles.AlertPanel
	}
	style = style.Copy().Width(m.width).Height(m.height)

	title := "Recent Leads"
	if m.filtering {
		title = m.textInput.View()
	} else if m.filter != "" {
		title = fmt.Sprintf("Filter: %s", m.filter)
	}

	sortStr := m.sortBy.String()

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.Title.Render(title),
		lipgloss.PlaceHorizontal(m.width-lipgloss.Width(title)-lipgloss.Width(sortStr)-5, lipgloss.Right, " "),
		m.styles.MetricLabel.Render(fmt.Sprintf("[%s]", sortStr)),
	)

	avg := 0
	if len(m.visible) > 0 {
		total := 0
		for _, l := range m.visible {
			total += l.Score
		}
		avg = total / len(m.visible)
	}
	scoreBar := renderBar(m.styles, avg, 100, m.width-4, fmt.Sprintf("Avg score %d", avg))
	status := m.styles.MetricLabel.Render(fmt.Sprintf("%d of %d leads", len(m.visible), len(m.leads)))

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.table.View(),
		"\n",
		scoreBar,
		status,
	))
}
