package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/leadflow/leadtop/internal/config"
	"github.com/leadflow/leadtop/internal/leads"
	"github.com/leadflow/leadtop/internal/stats"
	"github.com/leadflow/leadtop/internal/theme"
)

type TickMsg time.Time

// tickRand is used to add jitter to polling intervals.
// Safe for use in this context as tick() is only called from
// the single-threaded Bubble Tea event loop.
var tickRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// tick schedules the next refresh at interval +/- 10%.
func tick(interval time.Duration) tea.Cmd {
	spread := int64(interval / 5)
	var jitter time.Duration
	if spread > 0 {
		jitter = time.Duration(tickRand.Int63n(spread) - spread/2)
	}
	return tea.Tick(interval+jitter, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type RootModel struct {
	provider   leads.Provider
	config     *config.ProfileConfiguration
	state      *theme.State
	aggregator stats.Aggregator
	log        *zap.Logger

	// Sub-models
	cards    StatCardsModel
	activity ActivityModel
	leads    LeadsModel
	footer   FooterModel
	styles   Styles

	lastErr error

	// Layout state
	width, height int
	col1Pct       float64 // Percentage of width for the activity column
	// Leads column takes remaining

	// Tooltip state
	mouseX, mouseY       int
	showTooltip          bool
	currentTooltipRegion string
}

// NewRootModel wires the dashboard. state is required; cfg may be nil.
func NewRootModel(provider leads.Provider, cfg *config.ProfileConfiguration, state *theme.State) (RootModel, error) {
	if _, err := theme.Strict(state); err != nil {
		return RootModel{}, err
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	field, err := stats.ParseSeriesField(cfg.RateField)
	if err != nil {
		return RootModel{}, err
	}

	col1Pct := 0.40
	if val, ok := cfg.ColumnWidths[config.ModuleActivity]; ok {
		col1Pct = val
	}

	m := RootModel{
		provider:   provider,
		config:     cfg,
		state:      state,
		aggregator: stats.NewAggregator(field),
		log:        zap.L().Named("ui"),
		cards:      NewStatCardsModel(),
		activity:   NewActivityModel(field),
		leads:      NewLeadsModel(cfg.MaxLeads),
		footer:     NewFooterModel(),
		col1Pct:    col1Pct,
	}
	m.applyTheme()
	return m, nil
}

func (m RootModel) Init() tea.Cmd {
	// Fetch immediately; the tick handler schedules the rest.
	return func() tea.Msg { return TickMsg(time.Now()) }
}

// Theme returns the effective theme handle for this frame.
func (m RootModel) Theme() theme.Handle {
	return theme.Resolve(m.state, m.config.DarkModeOverride)
}

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// The filter prompt owns the keyboard until it is closed.
		if m.leads.Filtering() {
			m.leads, cmd = m.leads.Update(msg)
			cmds = append(cmds, cmd)
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "t":
			m.Theme().ToggleTheme()
		case "D":
			m.Theme().SetDarkMode(true)
		case "L":
			m.Theme().SetDarkMode(false)
		case "[": // Shrink activity column
			m.col1Pct -= 0.05
			if m.col1Pct < 0.1 {
				m.col1Pct = 0.1
			}
			m.resizeModules()
		case "]": // Expand activity column
			m.col1Pct += 0.05
			if m.col1Pct > 0.9 {
				m.col1Pct = 0.9
			}
			m.resizeModules()
		case "c":
			m.activity, cmd = m.activity.Update(msg)
			cmds = append(cmds, cmd)
		default:
			// Table navigation, filter and sort
			m.leads, cmd = m.leads.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeModules()

	case TickMsg:
		m.refresh()
		cmds = append(cmds, tick(m.refreshInterval()))

	case tea.MouseMsg:
		m.mouseX = msg.X
		m.mouseY = msg.Y

		if m.config.ShowTooltips {
			region := m.determineMouseRegion()
			m.showTooltip = (region != "")
			if m.showTooltip {
				m.currentTooltipRegion = region
			}
		} else {
			m.showTooltip = false
			m.currentTooltipRegion = ""
		}

		m.leads, cmd = m.leads.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.leads.Filtering() {
		m.footer.SetHelp("filtering leads, enter to apply, esc to close")
	} else {
		m.footer.SetHelp("")
	}

	m.applyTheme()
	return m, tea.Batch(cmds...)
}

func (m *RootModel) refresh() {
	snap, err := m.provider.GetSnapshot()
	if err != nil {
		if m.lastErr == nil || m.lastErr.Error() != err.Error() {
			m.log.Warn("snapshot refresh failed", zap.Error(err))
		}
		m.lastErr = err
		m.resizeModules()
		return
	}

	hadErr := m.lastErr != nil
	m.lastErr = nil

	m.cards.SetEntries(m.aggregator.Compute(&snap.Summary, snap.Activity))
	m.activity.SetSeries(snap.Activity)
	m.leads.SetLeads(snap.Leads)
	m.footer.SetHost(snap.Host)

	// Cards appear after the first snapshot and the alert line may be gone.
	if hadErr || m.cards.Height() > 0 {
		m.resizeModules()
	}
}

func (m RootModel) refreshInterval() time.Duration {
	return time.Duration(m.config.RefreshInterval) * time.Millisecond
}

// applyTheme rebuilds styles when the effective mode changed.
func (m *RootModel) applyTheme() {
	isDark := m.Theme().IsDark
	if m.styles.Palette.Background != "" && m.styles.IsDark == isDark {
		return
	}
	m.styles = NewStyles(isDark)
	m.cards.SetStyles(m.styles)
	m.activity.SetStyles(m.styles)
	m.leads.SetStyles(m.styles)
	m.footer.SetStyles(m.styles)
}

func (m RootModel) cardsHeight() int {
	if !m.config.ModuleEnabled(config.ModuleStats) {
		return 0
	}
	return m.cards.Height()
}

func (m RootModel) alertHeight() int {
	if m.lastErr != nil {
		return 1
	}
	return 0
}

// columnWidths splits the width between the activity and leads columns.
// A disabled module gives its share to the other.
func (m RootModel) columnWidths() (int, int) {
	showActivity := m.config.ModuleEnabled(config.ModuleActivity)
	showLeads := m.config.ModuleEnabled(config.ModuleLeads)
	switch {
	case showActivity && showLeads:
		w1 := int(float64(m.width) * m.col1Pct)
		return w1, m.width - w1
	case showActivity:
		return m.width, 0
	case showLeads:
		return 0, m.width
	default:
		return 0, 0
	}
}

func (m *RootModel) resizeModules() {
	if m.width == 0 || m.height == 0 {
		return
	}

	w1, w2 := m.columnWidths()

	m.cards.SetSize(m.width)

	// Height available for columns (minus cards, alert and footer)
	h := m.height - 1 - m.cardsHeight() - m.alertHeight()
	if h < 1 {
		h = 1
	}

	m.activity.SetSize(w1, h)
	m.leads.SetSize(w2, h)
	m.footer.SetSize(m.width)
}

func (m RootModel) determineMouseRegion() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	footerRow := m.height - 1
	if m.mouseY == footerRow {
		return "footer"
	}
	if m.mouseY < 0 || m.mouseY > footerRow || m.mouseX < 0 || m.mouseX >= m.width {
		return ""
	}

	if m.mouseY < m.cardsHeight() {
		return "stats"
	}
	if m.mouseY < m.cardsHeight()+m.alertHeight() {
		return ""
	}

	w1, _ := m.columnWidths()
	if m.mouseX < w1 {
		return "activity"
	}
	if m.config.ModuleEnabled(config.ModuleLeads) {
		return "leads"
	}
	return ""
}

func (m RootModel) getTooltipContent(region string) string {
	switch region {
	case "stats":
		return "Stat Cards: Total leads, calls made, meetings scheduled and the weekly conversion figure."
	case "activity":
		return "Activity Panel: Leads per day over the last week. Press c to switch to completed calls."
	case "leads":
		return "Leads Table: Use Up/Down to navigate, / to filter and s to change the sort column."
	case "footer":
		return "Footer: Shows hotkeys, host and current time. t toggles the theme, [ and ] resize the activity column."
	default:
		return ""
	}
}

func (m RootModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	if m.cardsHeight() > 0 {
		sections = append(sections, m.cards.View())
	}
	if m.lastErr != nil {
		sections = append(sections, m.styles.Alert.Render(fmt.Sprintf("Data error: %v", m.lastErr)))
	}

	var cols []string
	if m.config.ModuleEnabled(config.ModuleActivity) {
		cols = append(cols, m.activity.View())
	}
	if m.config.ModuleEnabled(config.ModuleLeads) {
		cols = append(cols, m.leads.View())
	}
	if len(cols) > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	sections = append(sections, m.footer.View())
	mainView := lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		m.styles.Base.Render(lipgloss.JoinVertical(lipgloss.Left, sections...)),
		lipgloss.WithWhitespaceBackground(m.styles.Palette.Background))

	if m.showTooltip && m.currentTooltipRegion != "" {
		tooltipContent := m.getTooltipContent(m.currentTooltipRegion)
		if tooltipContent != "" {
			return mainView + "\n" + m.styles.Tooltip.Render(tooltipContent)
		}
	}

	return mainView
}
