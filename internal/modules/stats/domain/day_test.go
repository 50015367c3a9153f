package domain_test

import (
	"testing"
	"time"

	"studyhub/internal/modules/stats/domain"
)

func TestDayOfIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()
	morning := domain.DayOf(time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC))
	night := domain.DayOf(time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC))
	if morning != night || morning != "2026-03-01" {
		t.Fatalf("expected both to be 2026-03-01, got %s and %s", morning, night)
	}
}

func TestDayOfUsesTimeLocation(t *testing.T) {
	t.Parallel()
	zone := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	if got := domain.DayOf(ts.In(zone)); got != "2026-03-02" {
		t.Fatalf("expected local calendar day 2026-03-02, got %s", got)
	}
}

func TestDayArithmeticAcrossBoundaries(t *testing.T) {
	t.Parallel()
	if got := domain.Day("2026-03-01").Prev(); got != "2026-02-28" {
		t.Fatalf("expected 2026-02-28, got %s", got)
	}
	if got := domain.Day("2028-03-01").Prev(); got != "2028-02-29" {
		t.Fatalf("expected leap day, got %s", got)
	}
	if got := domain.Day("2026-12-31").AddDays(1); got != "2027-01-01" {
		t.Fatalf("expected new year, got %s", got)
	}
	if got := domain.Day("2026-02-25").DaysUntil("2026-03-04"); got != 7 {
		t.Fatalf("expected 7 days, got %d", got)
	}
	if got := domain.Day("2026-03-04").DaysUntil("2026-03-02"); got != -2 {
		t.Fatalf("expected -2 days, got %d", got)
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()
	if _, err := domain.ParseDay("2026-02-30"); err == nil {
		t.Fatalf("invalid calendar date should fail")
	}
	d, err := domain.ParseDay("2026-02-25")
	if err != nil || d != "2026-02-25" {
		t.Fatalf("expected valid day, got %q err=%v", d, err)
	}
}
