package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "studyhub/internal/modules/focus/dto"
	statsdto "studyhub/internal/modules/stats/dto"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/ui/components"
	"studyhub/internal/ui/theme"
	focusview "studyhub/internal/ui/views/focus"
	statsview "studyhub/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type focusPort interface {
	Start(ctx context.Context, label, goal string, plannedMinutes int) (focusdto.StartOutput, error)
	End(ctx context.Context, focusID, outcome string) (focusdto.EndOutput, error)
	Cancel(ctx context.Context) error
	GetActive(ctx context.Context) (focusdto.ActiveFocusOutput, error)
}

type statsPort interface {
	Show(ctx context.Context) (statsdto.StatsOutput, error)
	Record(ctx context.Context, minutes float64) (statsdto.StatsOutput, error)
	Export(ctx context.Context, path string) (statsdto.ExportOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Focus", "Stats"}

// ─── async messages ───────────────────────────────────────────────────────────

type activeLoadedMsg struct {
	active focusdto.ActiveFocusOutput
	err    error
}

type focusStartedMsg struct {
	active focusdto.ActiveFocusOutput
	err    error
}

type focusEndedMsg struct {
	out focusdto.EndOutput
	err error
}

type focusCancelledMsg struct{ err error }

type statsRecordedMsg struct {
	out statsdto.StatsOutput
	err error
}

type statsExportedMsg struct {
	out statsdto.ExportOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh stats")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It routes tabs, owns the palette and
// forwards focus completion to the stats view.
type Model struct {
	focus focusPort
	stats statsPort

	focusView focusview.Model
	statsView statsview.Model

	activeTab   tabID
	keys        keyMap
	help        help.Model
	showHelp    bool
	palette     components.Palette
	activeFocus focusdto.ActiveFocusOutput
	hasActive   bool
	status      string
	width       int
	height      int
}

func NewModel(focus focusPort, stats statsPort) Model {
	return Model{
		focus:     focus,
		stats:     stats,
		focusView: focusview.New(),
		statsView: statsview.New(stats),
		activeTab: tabFocus,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.focusView.Init(),
		m.statsView.Init(),
		m.loadActiveCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Keys belong to the open palette; ticks and async results still land below.
	if _, isKey := msg.(tea.KeyMsg); isKey && m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case activeLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveFocus) {
				m.status = "active focus check: " + msg.err.Error()
			}
			m.setActive(focusdto.ActiveFocusOutput{}, false)
		} else {
			m.setActive(msg.active, true)
			m.status = "focus recovered: " + msg.active.Label
		}
		return m, nil

	case focusStartedMsg:
		if msg.err != nil {
			m.status = "focus start failed: " + msg.err.Error()
		} else {
			m.setActive(msg.active, true)
			m.activeTab = tabFocus
			m.status = "focus started: " + msg.active.Label
		}
		return m, nil

	case focusEndedMsg:
		if msg.err != nil {
			m.status = "focus end failed: " + msg.err.Error()
			return m, nil
		}
		m.setActive(focusdto.ActiveFocusOutput{}, false)
		m.status = fmt.Sprintf("focus logged: %d min, streak %d", msg.out.DurationMin, msg.out.Streak)
		return m, m.statsView.Refresh()

	case focusCancelledMsg:
		if msg.err != nil {
			m.status = "focus cancel failed: " + msg.err.Error()
		} else {
			m.setActive(focusdto.ActiveFocusOutput{}, false)
			m.status = "focus cancelled"
		}
		return m, nil

	case statsRecordedMsg:
		if msg.err != nil {
			m.status = "record failed: " + msg.err.Error()
		} else {
			m.statsView.Set(msg.out)
			m.status = fmt.Sprintf("recorded: %d min today, streak %d", msg.out.TotalMinutesToday, msg.out.Streak)
		}
		return m, nil

	case statsExportedMsg:
		if msg.err != nil {
			m.status = "export failed: " + msg.err.Error()
		} else {
			m.statsView.Set(msg.out.Stats)
			m.status = "exported: " + msg.out.Path
		}
		return m, nil

	case focusview.DueMsg:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		if !m.hasActive || msg.FocusID != m.activeFocus.FocusID {
			return m, cmd
		}
		m.status = "planned time reached, logging focus"
		return m, tea.Batch(cmd, m.endFocusCmd("completed"))

	case focusview.TickMsg:
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, cmd

	case statsview.LoadedMsg:
		var cmd tea.Cmd
		m.statsView, cmd = m.statsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.statsView.Refresh()
		}

	default:
		if m.palette.Visible() {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabStats:
		content = m.statsView.View()
	default:
		content = m.focusView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.TabActive.Render(tabLabels[i])
		} else {
			parts[i] = theme.Tab.Render(tabLabels[i])
		}
	}
	bar := "studyhub  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.hasActive {
		left = theme.Hot.Render("● "+m.activeFocus.Label) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + theme.Bar.Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "focus:start":
		if len(parts) < 3 {
			m.status = "usage: focus:start <minutes> <label>"
			return m, nil
		}
		planned, err := strconv.Atoi(parts[1])
		if err != nil || planned < 0 {
			m.status = "invalid minutes"
			return m, nil
		}
		label := strings.Join(parts[2:], " ")
		return m, m.startFocusCmd(label, planned)

	case "focus:end":
		outcome := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.endFocusCmd(outcome)

	case "focus:cancel":
		return m, m.cancelFocusCmd()

	case "stats:record":
		if len(parts) < 2 {
			m.status = "usage: stats:record <minutes>"
			return m, nil
		}
		minutes, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid minutes"
			return m, nil
		}
		m.activeTab = tabStats
		return m, m.recordCmd(minutes)

	case "stats:refresh":
		m.activeTab = tabStats
		return m, m.statsView.Refresh()

	case "stats:export":
		if len(parts) < 2 {
			m.status = "usage: stats:export <note path>"
			return m, nil
		}
		return m, m.exportCmd(strings.Join(parts[1:], " "))

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) setActive(active focusdto.ActiveFocusOutput, ok bool) {
	m.activeFocus = active
	m.hasActive = ok
	m.focusView.SetActive(active, ok)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		active, err := m.focus.GetActive(context.Background())
		return activeLoadedMsg{active: active, err: err}
	}
}

func (m Model) startFocusCmd(label string, planned int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.focus.Start(context.Background(), label, "", planned)
		if err != nil {
			return focusStartedMsg{err: err}
		}
		return focusStartedMsg{active: focusdto.ActiveFocusOutput{
			FocusID:        out.FocusID,
			Label:          out.Label,
			PlannedMinutes: out.PlannedMinutes,
			StartedAt:      out.StartedAt,
		}}
	}
}

func (m Model) endFocusCmd(outcome string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.focus.End(context.Background(), "", outcome)
		return focusEndedMsg{out: out, err: err}
	}
}

func (m Model) cancelFocusCmd() tea.Cmd {
	return func() tea.Msg {
		return focusCancelledMsg{err: m.focus.Cancel(context.Background())}
	}
}

func (m Model) recordCmd(minutes float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.stats.Record(context.Background(), minutes)
		return statsRecordedMsg{out: out, err: err}
	}
}

func (m Model) exportCmd(path string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.stats.Export(context.Background(), path)
		return statsExportedMsg{out: out, err: err}
	}
}
