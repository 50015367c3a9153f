package focus

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "studyhub/internal/modules/focus/dto"
	"studyhub/internal/ui/theme"
)

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg drives the on-screen timer.
type TickMsg time.Time

// DueMsg is emitted once when a planned focus reaches its length. It must be
// routed back into Update to resume ticking.
type DueMsg struct {
	FocusID string
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	active    focusdto.ActiveFocusOutput
	hasActive bool
	dueSent   bool
	now       time.Time
	bar       progress.Model
	width     int
	height    int
}

func New() Model {
	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	return Model{bar: bar, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// SetActive shows a running focus, or clears the view when ok is false.
func (m *Model) SetActive(active focusdto.ActiveFocusOutput, ok bool) {
	m.active = active
	m.hasActive = ok
	m.dueSent = false
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(min(m.width-8, 60), 10)
	case TickMsg:
		m.now = time.Time(msg)
		if m.hasActive && !m.dueSent && m.planned() > 0 && m.elapsed() >= m.planned() {
			m.dueSent = true
			id := m.active.FocusID
			return m, func() tea.Msg { return DueMsg{FocusID: id} }
		}
		return m, tick()
	case DueMsg:
		// The tick chain pauses while DueMsg is in flight.
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.hasActive {
		body := theme.Title.Render("No focus running") + "\n\n" +
			theme.Muted.Render("palette:  focus:start <minutes> <label>")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Pane.Render(body))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.active.Label) + "\n")
	if m.active.Goal != "" {
		sb.WriteString(theme.Muted.Render(m.active.Goal) + "\n")
	}
	sb.WriteString("\n" + theme.Hot.Render(FormatClock(m.elapsed())))
	if planned := m.planned(); planned > 0 {
		ratio := float64(m.elapsed()) / float64(planned)
		sb.WriteString(theme.Muted.Render(" / "+FormatClock(planned)) + "\n\n")
		sb.WriteString(m.bar.ViewAs(min(ratio, 1)))
	} else {
		sb.WriteString("\n\n" + theme.Muted.Render("open-ended"))
	}
	sb.WriteString("\n\n" + theme.Muted.Render("focus:end <outcome>   focus:cancel"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.PaneActive.Render(sb.String()))
}

// FormatClock renders a duration as MM:SS, or H:MM:SS past an hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) elapsed() time.Duration {
	return m.now.Sub(m.active.StartedAt)
}

func (m Model) planned() time.Duration {
	return time.Duration(m.active.PlannedMinutes) * time.Minute
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return TickMsg(t) })
}
