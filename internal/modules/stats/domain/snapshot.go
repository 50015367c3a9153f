package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	apperrors "studyhub/internal/platform/errors"
)

// WindowDays is the length of the rolling per-day minutes window.
const WindowDays = 7

var ErrInvalidSession = fmt.Errorf("%w: session duration must be a positive whole number of minutes", apperrors.ErrInvalidInput)

// Snapshot is the persisted aggregate of completed focus sessions.
//
// SessionsToday and TotalMinutesToday describe LastSessionDate only.
// WeeklyData holds minutes per day, oldest first; its last slot describes
// WindowDate, which is never persisted and starts out equal to LastSessionDate.
type Snapshot struct {
	SessionsToday     int
	TotalMinutesToday int
	Streak            int
	LastSessionDate   Day
	WeeklyData        [WindowDays]int
	WindowDate        Day
}

func DefaultSnapshot() Snapshot {
	return Snapshot{}
}

func (s Snapshot) Validate() error {
	if s.SessionsToday < 0 || s.TotalMinutesToday < 0 || s.Streak < 0 {
		return errors.New("counters must be non-negative")
	}
	for i, v := range s.WeeklyData {
		if v < 0 {
			return fmt.Errorf("weekly slot %d is negative", i)
		}
	}
	if !s.LastSessionDate.IsZero() {
		if _, err := ParseDay(string(s.LastSessionDate)); err != nil {
			return err
		}
	}
	return nil
}

// Session is one completed focus session.
type Session struct {
	DurationMinutes int
	CompletedAt     time.Time
}

// NewSession validates a raw duration before it can touch a snapshot.
func NewSession(minutes float64, completedAt time.Time) (Session, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 || minutes != math.Trunc(minutes) || minutes > math.MaxInt32 {
		return Session{}, ErrInvalidSession
	}
	return Session{DurationMinutes: int(minutes), CompletedAt: completedAt}, nil
}

func (s Session) Validate() error {
	if s.DurationMinutes <= 0 {
		return ErrInvalidSession
	}
	return nil
}

// Reconcile normalizes a snapshot loaded on an earlier day so that it
// describes today. LastSessionDate is left alone: it only moves when a session
// is recorded. Calling Reconcile again for the same today is a no-op.
func Reconcile(s Snapshot, today Day) Snapshot {
	if s.LastSessionDate.IsZero() || s.LastSessionDate == today {
		return s
	}
	out := s
	out.WeeklyData = shiftWindow(s.WeeklyData, s.windowDate().DaysUntil(today))
	out.WindowDate = today
	if s.LastSessionDate != today.Prev() {
		out.Streak = 0
	}
	out.SessionsToday = 0
	out.TotalMinutesToday = 0
	return out
}

// Record applies one completed session on day today and returns the new
// snapshot. The input snapshot is not modified.
func Record(s Snapshot, session Session, today Day) (Snapshot, error) {
	if err := session.Validate(); err != nil {
		return s, err
	}
	out := s
	if w := s.windowDate(); !w.IsZero() && w != today {
		out.WeeklyData = shiftWindow(s.WeeklyData, w.DaysUntil(today))
	}
	out.WindowDate = today
	d := session.DurationMinutes

	switch {
	case s.LastSessionDate == today:
		if s.SessionsToday == 0 {
			out.Streak = s.Streak + 1
		}
		out.SessionsToday = s.SessionsToday + 1
		out.TotalMinutesToday = s.TotalMinutesToday + d
	case !s.LastSessionDate.IsZero() && s.LastSessionDate == today.Prev():
		out.Streak = s.Streak + 1
		out.SessionsToday = 1
		out.TotalMinutesToday = d
		out.LastSessionDate = today
	default:
		out.Streak = 1
		out.SessionsToday = 1
		out.TotalMinutesToday = d
		out.LastSessionDate = today
	}
	out.WeeklyData[WindowDays-1] = out.TotalMinutesToday
	return out, nil
}

func (s Snapshot) windowDate() Day {
	if !s.WindowDate.IsZero() {
		return s.WindowDate
	}
	return s.LastSessionDate
}

// shiftWindow drops the n oldest slots and appends n zero slots. A negative n
// (clock moved backwards) leaves the window as is.
func shiftWindow(window [WindowDays]int, n int) [WindowDays]int {
	if n <= 0 {
		return window
	}
	var out [WindowDays]int
	if n >= WindowDays {
		return out
	}
	copy(out[:], window[n:])
	return out
}
