package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadflow/leadtop/internal/stats"
)

const cardHeight = 5 // border + title + value + trend

type StatCardsModel struct {
	width   int
	entries []stats.Entry
	styles  Styles
}

func NewStatCardsModel() StatCardsModel {
	return StatCardsModel{styles: NewStyles(false)}
}

func (m StatCardsModel) Init() tea.Cmd {
	return nil
}

func (m StatCardsModel) Update(msg tea.Msg) (StatCardsModel, tea.Cmd) {
	return m, nil
}

func (m *StatCardsModel) SetEntries(entries []stats.Entry) {
	m.entries = entries
}

func (m *StatCardsModel) SetStyles(s Styles) {
	m.styles = s
}

func (m *StatCardsModel) SetSize(w int) {
	m.width = w
}

// Height is the number of rows View occupies.
func (m StatCardsModel) Height() int {
	if m.width == 0 || len(m.entries) == 0 {
		return 0
	}
	return cardHeight
}

func (m StatCardsModel) View() string {
	if m.width == 0 || len(m.entries) == 0 {
		return ""
	}

	n := len(m.entries)
	cardWidth := m.width/n - 2 // border
	if cardWidth < 12 {
		cardWidth = 12
	}

	cards := make([]string, 0, n)
	for _, e := range m.entries {
		cards = append(cards, m.renderCard(e, cardWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m StatCardsModel) renderCard(e stats.Entry, width int) string {
	title := m.styles.MetricLabel.Render(e.Title)
	value := m.styles.MetricValue.Render(e.Value)
	trend := fmt.Sprintf("%s %s",
		m.styles.ForPolarity(e.Polarity).Render(e.TrendValue),
		m.styles.MetricLabel.Render(e.TrendLabel),
	)

	return m.styles.Card.Copy().Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, value, trend),
	)
}
