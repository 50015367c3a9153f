package dto

import "time"

type RecordInput struct {
	DurationMinutes float64
	CompletedAt     time.Time
}

type DayTotal struct {
	Date    string
	Minutes int
}

type StatsOutput struct {
	Today             string
	SessionsToday     int
	TotalMinutesToday int
	Streak            int
	LastSessionDate   string
	Week              []DayTotal
	WeekMinutes       int
	BestDay           DayTotal
}

type ExportInput struct {
	Path string
}

type ExportOutput struct {
	Path  string
	Stats StatsOutput
}
