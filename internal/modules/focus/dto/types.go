package dto

import "time"

type StartInput struct {
	Label          string
	Goal           string
	PlannedMinutes int
}

type StartOutput struct {
	FocusID        string
	Label          string
	PlannedMinutes int
	StartedAt      time.Time
}

type EndInput struct {
	FocusID string
	Outcome string
}

type EndOutput struct {
	FocusID           string
	Label             string
	Path              string
	DurationMin       int
	SessionsToday     int
	TotalMinutesToday int
	Streak            int
}

type ActiveFocusOutput struct {
	FocusID        string
	Label          string
	Goal           string
	PlannedMinutes int
	StartedAt      time.Time
}

type HistoryEntry struct {
	FocusID     string
	Label       string
	StartedAt   time.Time
	DurationMin int
	Outcome     string
	Path        string
}
