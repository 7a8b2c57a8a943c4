package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/leadflow/leadtop/internal/leads"
)

type FooterModel struct {
	width  int
	help   string
	host   leads.HostInfo
	styles Styles
	now    func() time.Time
}

func NewFooterModel() FooterModel {
	return FooterModel{styles: NewStyles(false), now: time.Now}
}

func (m FooterModel) Init() tea.Cmd {
	return nil
}

func (m FooterModel) Update(msg tea.Msg) (FooterModel, tea.Cmd) {
	return m, nil
}

func (m *FooterModel) SetSize(w int) {
	m.width = w
}

// SetHelp replaces the footer with an info line; empty restores hotkeys.
func (m *FooterModel) SetHelp(h string) {
	m.help = h
}

func (m *FooterModel) SetHost(h leads.HostInfo) {
	m.host = h
}

func (m *FooterModel) SetStyles(s Styles) {
	m.styles = s
}

func (m FooterModel) View() string {
	if m.width == 0 {
		return ""
	}

	style := m.styles.Footer.Copy().Width(m.width)

	if m.help != "" {
		return style.Render(fmt.Sprintf("INFO: %s", m.help))
	}

	mode := "light"
	if m.styles.IsDark {
		mode = "dark"
	}

	left := fmt.Sprintf("LeadFlow | %s", m.now().Format("15:04:05"))
	if m.host.Hostname != "" {
		left = fmt.Sprintf("LeadFlow | %s | up %s | %s", m.host.Hostname, formatUptime(m.host.Uptime), m.now().Format("15:04:05"))
	}
	left += " | " + mode

	right := "q: Quit | t: Theme | /: Filter | s: Sort | c: Calls | [ ]: Resize"

	spacerWidth := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if spacerWidth < 0 {
		spacerWidth = 0
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return style.Render(left + spacer + right)
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd%dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}
