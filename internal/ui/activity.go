package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/leadflow/leadtop/internal/leads"
	"github.com/leadflow/leadtop/internal/stats"
)

type ActivityModel struct {
	width     int
	height    int
	series    []leads.ActivityPoint
	field     stats.SeriesField
	showCalls bool
	styles    Styles
}

func NewActivityModel(field stats.SeriesField) ActivityModel {
	return ActivityModel{
		field:  field,
		styles: NewStyles(false),
	}
}

func (m ActivityModel) Init() tea.Cmd {
	return nil
}

func (m ActivityModel) Update(msg tea.Msg) (ActivityModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			m.showCalls = !m.showCalls
		}
	}
	return m, nil
}

func (m *ActivityModel) SetSeries(series []leads.ActivityPoint) {
	m.series = series
}

func (m *ActivityModel) SetStyles(s Styles) {
	m.styles = s
}

func (m *ActivityModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m ActivityModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	style := m.styles.Panel.Copy().Width(m.width).Height(m.height)

	if len(m.series) == 0 {
		content := lipgloss.Place(m.width-2, m.height-2, lipgloss.Center, lipgloss.Center, "No activity yet")
		return style.Render(content)
	}

	header := m.styles.Title.Render(fmt.Sprintf("Weekly Activity (%s)", m.field))

	var mainContent string
	availableHeight := m.height - 4 // header, labels, footer, padding
	if availableHeight < 3 {
		availableHeight = 3
	}

	if m.showCalls {
		mainContent = m.renderCalls(availableHeight)
	} else {
		mainContent = m.renderGraph(availableHeight)
	}

	footer := m.styles.MetricLabel.Render("Press 'c' to toggle calls")

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		mainContent,
		footer,
	))
}

// renderGraph draws one column group per activity point, scaled to the
// largest value in the series.
func (m ActivityModel) renderGraph(height int) string {
	values := make([]int, len(m.series))
	peak := 0
	for i, p := range m.series {
		values[i] = m.field.Value(p)
		if values[i] > peak {
			peak = values[i]
		}
	}

	colWidth := (m.width - 4) / len(values)
	if colWidth < 2 {
		colWidth = 2
	}
	barWidth := colWidth - 1

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", colWidth*len(values)))
	}

	for x, val := range values {
		h := 0
		if peak > 0 {
			h = int(float64(val) / float64(peak) * float64(height))
		}
		if h == 0 && val > 0 {
			h = 1
		}
		for y := 0; y < h; y++ {
			for w := 0; w < barWidth; w++ {
				grid[height-1-y][x*colWidth+w] = '█'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(m.styles.Bar.Render(string(row)) + "\n")
	}

	// Day labels under each column.
	for _, p := range m.series {
		label := p.Name
		if lipgloss.Width(label) > colWidth {
			label = ansi.Truncate(label, colWidth, "")
		}
		pad := colWidth - lipgloss.Width(label)
		if pad < 0 {
			pad = 0
		}
		sb.WriteString(m.styles.MetricLabel.Render(label + strings.Repeat(" ", pad)))
	}

	return sb.String()
}

func (m ActivityModel) renderCalls(height int) string {
	peak := 0
	for _, p := range m.series {
		if p.CallsCompleted > peak {
			peak = p.CallsCompleted
		}
	}

	var sb strings.Builder
	for i, p := range m.series {
		if i >= height {
			break
		}
		label := fmt.Sprintf("%-3s %3d", p.Name, p.CallsCompleted)
		sb.WriteString(renderBar(m.styles, p.CallsCompleted, peak, m.width-4, label) + "\n")
	}
	return sb.String()
}

func renderBar(s Styles, value, max, width int, label string) string {
	if max <= 0 {
		max = 100
	} // Avoid divide by zero
	if width < 10 {
		return label
	}
	barWidth := width - lipgloss.Width(label) - 2
	if barWidth < 0 {
		barWidth = 0
	}

	ratio := float64(value) / float64(max)
	if ratio > 1.0 {
		ratio = 1.0
	} else if ratio < 0 {
		ratio = 0
	}
	filled := int(ratio * float64(barWidth))
	empty := barWidth - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)

	return fmt.Sprintf("%s %s", label, s.Bar.Render(bar))
}
