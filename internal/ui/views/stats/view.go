package stats

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "studyhub/internal/modules/stats/dto"
	"studyhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	Show(ctx context.Context) (statsdto.StatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Stats statsdto.StatsOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

const barWidth = 28

type Model struct {
	port   StatsPort
	stats  statsdto.StatsOutput
	err    error
	loaded bool
	width  int
	height int
}

func New(port StatsPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads stats through the port.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return LoadedMsg{Err: fmt.Errorf("stats adapter not configured")}
		}
		out, err := m.port.Show(context.Background())
		return LoadedMsg{Stats: out, Err: err}
	}
}

// Set replaces the displayed stats without a round trip, e.g. after a
// session was recorded.
func (m *Model) Set(stats statsdto.StatsOutput) {
	m.stats = stats
	m.err = nil
	m.loaded = true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.stats = msg.Stats
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading stats…"))
	}
	if m.err != nil {
		return theme.Pane.Render(theme.Error.Render("stats: " + m.err.Error()))
	}
	s := m.stats

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Today", fmt.Sprintf("%d sessions", s.SessionsToday)),
		card("Minutes", fmt.Sprintf("%d min", s.TotalMinutesToday)),
		card("Streak", fmt.Sprintf("%d day(s)", s.Streak)),
	)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Last 7 days") + "\n\n")
	sb.WriteString(RenderBars(s.Week, barWidth))
	sb.WriteString("\n" + theme.Muted.Render(fmt.Sprintf("week total: %d min", s.WeekMinutes)))
	if s.BestDay.Minutes > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  best: %s (%d min)", s.BestDay.Date, s.BestDay.Minutes)))
	}
	week := theme.Pane.Width(max(m.width-4, barWidth+24)).Render(sb.String())

	return lipgloss.JoinVertical(lipgloss.Left, cards, week)
}

// RenderBars draws one horizontal bar per day scaled to the busiest day.
func RenderBars(week []statsdto.DayTotal, width int) string {
	peak := 0
	for _, d := range week {
		peak = max(peak, d.Minutes)
	}
	var sb strings.Builder
	for i, d := range week {
		n := 0
		if peak > 0 {
			n = d.Minutes * width / peak
		}
		if d.Minutes > 0 && n == 0 {
			n = 1
		}
		style := theme.DayBar
		if i == len(week)-1 {
			style = theme.TodayBar
		}
		bar := style.Render(strings.Repeat("█", n))
		fmt.Fprintf(&sb, "%s %s %s\n", theme.Muted.Render(d.Date), bar, theme.Muted.Render(fmt.Sprintf("%d", d.Minutes)))
	}
	return sb.String()
}

// ─── private ─────────────────────────────────────────────────────────────────

func card(title, value string) string {
	return theme.Pane.Width(22).Render(theme.Muted.Render(title) + "\n" + theme.Hot.Render(value))
}
