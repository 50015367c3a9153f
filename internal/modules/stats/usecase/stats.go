package usecase

import (
	"context"
	"fmt"
	"strings"

	"studyhub/internal/modules/stats/domain"
	"studyhub/internal/modules/stats/dto"
	statsin "studyhub/internal/modules/stats/port/in"
	statsout "studyhub/internal/modules/stats/port/out"
	"studyhub/internal/modules/stats/service"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
)

const (
	ExportStartMarker = "<!-- studyhub:stats:start -->"
	ExportEndMarker   = "<!-- studyhub:stats:end -->"
)

type Interactor struct {
	tracker *service.Tracker
	clock   clock.Clock
	notes   statsout.NoteWriter
}

func NewInteractor(tracker *service.Tracker, clk clock.Clock, notes statsout.NoteWriter) statsin.Usecase {
	return &Interactor{tracker: tracker, clock: clk, notes: notes}
}

func (i *Interactor) Current(ctx context.Context) (dto.StatsOutput, error) {
	return i.toOutput(i.tracker.Reconcile(ctx)), nil
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.StatsOutput, error) {
	completedAt := input.CompletedAt
	if completedAt.IsZero() {
		completedAt = i.clock.Now()
	}
	session, err := domain.NewSession(input.DurationMinutes, completedAt)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	snapshot, err := i.tracker.Record(ctx, session)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return i.toOutput(snapshot), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export path is required", apperrors.ErrInvalidInput)
	}
	if i.notes == nil {
		return dto.ExportOutput{}, fmt.Errorf("note writer is not configured")
	}
	stats, err := i.Current(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	path, err := i.notes.WriteManagedBlock(ctx, input.Path, ExportStartMarker, ExportEndMarker, RenderSummary(stats))
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Path: path, Stats: stats}, nil
}

// RenderSummary formats stats as the markdown table used in exported notes.
func RenderSummary(stats dto.StatsOutput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## Focus stats (%s)\n\n", stats.Today)
	fmt.Fprintf(&sb, "- Sessions today: %d\n", stats.SessionsToday)
	fmt.Fprintf(&sb, "- Minutes today: %d\n", stats.TotalMinutesToday)
	fmt.Fprintf(&sb, "- Streak: %d day(s)\n", stats.Streak)
	fmt.Fprintf(&sb, "- Last 7 days: %d min\n\n", stats.WeekMinutes)
	sb.WriteString("| Day | Minutes |\n|---|---|\n")
	for _, day := range stats.Week {
		fmt.Fprintf(&sb, "| %s | %d |\n", day.Date, day.Minutes)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (i *Interactor) toOutput(snapshot domain.Snapshot) dto.StatsOutput {
	today := domain.DayOf(i.clock.Now())
	// Label slots from the day the window ends on.
	end := snapshot.WindowDate
	if end.IsZero() {
		end = today
	}
	out := dto.StatsOutput{
		Today:           today.String(),
		Streak:          snapshot.Streak,
		LastSessionDate: snapshot.LastSessionDate.String(),
		Week:            make([]dto.DayTotal, 0, domain.WindowDays),
	}
	if snapshot.LastSessionDate == today {
		out.SessionsToday = snapshot.SessionsToday
		out.TotalMinutesToday = snapshot.TotalMinutesToday
	}
	for idx, minutes := range snapshot.WeeklyData {
		day := dto.DayTotal{Date: end.AddDays(idx - (domain.WindowDays - 1)).String(), Minutes: minutes}
		out.Week = append(out.Week, day)
		out.WeekMinutes += minutes
		if minutes > out.BestDay.Minutes {
			out.BestDay = day
		}
	}
	return out
}
