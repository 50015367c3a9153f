package domain

import (
	"errors"
	"time"
)

const SchemaVersion = 1

// ActiveFocus is a running focus timer. PlannedMinutes of zero means open-ended.
type ActiveFocus struct {
	FocusID        string    `json:"focus_id"`
	Label          string    `json:"label"`
	Goal           string    `json:"goal"`
	PlannedMinutes int       `json:"planned_minutes"`
	StartedAt      time.Time `json:"started_at"`
}

// Validate checks a focus restored from disk.
func (a ActiveFocus) Validate(now time.Time) error {
	switch {
	case a.FocusID == "":
		return errors.New("focus id is empty")
	case a.StartedAt.IsZero():
		return errors.New("start time is missing")
	case a.StartedAt.After(now.Add(time.Minute)):
		return errors.New("start time is in the future")
	case a.PlannedMinutes < 0:
		return errors.New("planned minutes are negative")
	}
	return nil
}

// ElapsedMinutes counts whole minutes since the focus started.
func (a ActiveFocus) ElapsedMinutes(now time.Time) int {
	elapsed := int(now.Sub(a.StartedAt).Minutes())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Due reports whether a planned focus has run its full length.
func (a ActiveFocus) Due(now time.Time) bool {
	return a.PlannedMinutes > 0 && now.Sub(a.StartedAt) >= time.Duration(a.PlannedMinutes)*time.Minute
}

type Focus struct {
	ID             string
	Label          string
	Goal           string
	PlannedMinutes int
	StartedAt      time.Time
	EndedAt        time.Time
	DurationMin    int
	Outcome        string
}
