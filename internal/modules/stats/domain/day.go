package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date with no time-of-day component, rendered YYYY-MM-DD.
// The zero value means "no day".
type Day string

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

func ParseDay(raw string) (Day, error) {
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", raw, err)
	}
	return Day(t.Format(dayLayout)), nil
}

func (d Day) IsZero() bool { return d == "" }

func (d Day) String() string { return string(d) }

// AddDays moves n civil days forward (or back for negative n).
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, n).Format(dayLayout))
}

func (d Day) Prev() Day { return d.AddDays(-1) }

// DaysUntil counts civil days from d to other; negative when other is earlier.
func (d Day) DaysUntil(other Day) int {
	from, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return 0
	}
	to, err := time.Parse(dayLayout, string(other))
	if err != nil {
		return 0
	}
	// Both values are UTC midnights, so the difference is a whole number of days.
	return int(to.Sub(from).Hours() / 24)
}
