package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/leadflow/leadtop/internal/stats"
)

// Palette is the set of colors a theme mode renders with.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color // Charts / normal metrics
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// DarkPalette is the midnight/ice scheme.
var DarkPalette = Palette{
	Background: lipgloss.Color("#0A001F"),
	Foreground: lipgloss.Color("#81A1C1"),
	Border:     lipgloss.Color("#4C566A"),
	Muted:      lipgloss.Color("#4C566A"),
	Accent:     lipgloss.Color("#8FBCBB"),
	Success:    lipgloss.Color("#A3BE8C"),
	Warning:    lipgloss.Color("#EBCB8B"),
	Danger:     lipgloss.Color("#C41E3A"),
}

var LightPalette = Palette{
	Background: lipgloss.Color("#F4F5F6"),
	Foreground: lipgloss.Color("#101F38"),
	Border:     lipgloss.Color("#DCE0E5"),
	Muted:      lipgloss.Color("#6B7280"),
	Accent:     lipgloss.Color("#2196F3"),
	Success:    lipgloss.Color("#2E7D32"),
	Warning:    lipgloss.Color("#B26A00"),
	Danger:     lipgloss.Color("#E53935"),
}

// Styles holds every lipgloss style the dashboard renders with.
type Styles struct {
	IsDark  bool
	Palette Palette

	Base        lipgloss.Style
	Panel       lipgloss.Style
	AlertPanel  lipgloss.Style
	Card        lipgloss.Style
	Title       lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Alert       lipgloss.Style
	Bar         lipgloss.Style
	Footer      lipgloss.Style
	Tooltip     lipgloss.Style

	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
	Neutral  lipgloss.Style
}

// NewStyles builds the style set for the given mode.
func NewStyles(isDark bool) Styles {
	p := LightPalette
	if isDark {
		p = DarkPalette
	}

	return Styles{
		IsDark:  isDark,
		Palette: p,

		Base: lipgloss.NewStyle().
			Background(p.Background).
			Foreground(p.Foreground),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		AlertPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Danger).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Bold(true),

		MetricLabel: lipgloss.NewStyle().
			Foreground(p.Muted),

		MetricValue: lipgloss.NewStyle().
			Foreground(p.Accent).
			Bold(true),

		Alert: lipgloss.NewStyle().
			Foreground(p.Danger).
			Bold(true),

		Bar: lipgloss.NewStyle().
			Foreground(p.Accent),

		Footer: lipgloss.NewStyle().
			Background(p.Border).
			Foreground(p.Background).
			Padding(0, 1),

		Tooltip: lipgloss.NewStyle().
			Background(p.Border).
			Foreground(p.Background).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Foreground),

		Positive: lipgloss.NewStyle().Foreground(p.Success),
		Negative: lipgloss.NewStyle().Foreground(p.Danger),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Neutral:  lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// ForPolarity picks the trend style for a stat entry.
func (s Styles) ForPolarity(p stats.Polarity) lipgloss.Style {
	switch p {
	case stats.PolarityPositive:
		return s.Positive
	case stats.PolarityNegative:
		return s.Negative
	case stats.PolarityWarning:
		return s.Warning
	default:
		return s.Neutral
	}
}
