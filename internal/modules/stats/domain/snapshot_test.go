package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"studyhub/internal/modules/stats/domain"
	apperrors "studyhub/internal/platform/errors"
)

const today = domain.Day("2026-02-25")

func mustRecord(t *testing.T, s domain.Snapshot, minutes int, day domain.Day) domain.Snapshot {
	t.Helper()
	out, err := domain.Record(s, domain.Session{DurationMinutes: minutes}, day)
	if err != nil {
		t.Fatalf("record %d minutes on %s: %v", minutes, day, err)
	}
	return out
}

func TestRecordFreshStart(t *testing.T) {
	t.Parallel()
	got := mustRecord(t, domain.DefaultSnapshot(), 25, today)
	if got.SessionsToday != 1 || got.TotalMinutesToday != 25 || got.Streak != 1 || got.LastSessionDate != today {
		t.Fatalf("unexpected fresh snapshot: %+v", got)
	}
	if got.WeeklyData != [7]int{0, 0, 0, 0, 0, 0, 25} {
		t.Fatalf("unexpected window: %v", got.WeeklyData)
	}
}

func TestRecordSameDaySecondSession(t *testing.T) {
	t.Parallel()
	first := mustRecord(t, domain.DefaultSnapshot(), 25, today)
	got := mustRecord(t, first, 25, today)
	if got.SessionsToday != 2 || got.TotalMinutesToday != 50 || got.Streak != 1 {
		t.Fatalf("unexpected same-day snapshot: %+v", got)
	}
	if got.WeeklyData[6] != 50 {
		t.Fatalf("expected today slot 50, got %v", got.WeeklyData)
	}
}

func TestRecordConsecutiveDay(t *testing.T) {
	t.Parallel()
	s := mustRecord(t, domain.DefaultSnapshot(), 25, today)
	s = mustRecord(t, s, 25, today)
	got := mustRecord(t, s, 10, today.AddDays(1))
	if got.SessionsToday != 1 || got.TotalMinutesToday != 10 || got.Streak != 2 || got.LastSessionDate != today.AddDays(1) {
		t.Fatalf("unexpected next-day snapshot: %+v", got)
	}
	if got.WeeklyData != [7]int{0, 0, 0, 0, 0, 50, 10} {
		t.Fatalf("unexpected window: %v", got.WeeklyData)
	}
}

func TestRecordSameDayFirstSessionIncrementsStreak(t *testing.T) {
	t.Parallel()
	s := domain.Snapshot{Streak: 3, LastSessionDate: today}
	got := mustRecord(t, s, 15, today)
	if got.Streak != 4 || got.SessionsToday != 1 || got.WeeklyData[6] != 15 {
		t.Fatalf("expected first session of current day to extend streak: %+v", got)
	}
}

func TestStreakGrowsWithDailyUse(t *testing.T) {
	t.Parallel()
	s := domain.DefaultSnapshot()
	for n := 1; n <= 12; n++ {
		day := today.AddDays(n)
		s = mustRecord(t, s, 20, day)
		if n%3 == 0 {
			s = mustRecord(t, s, 5, day)
		}
		if s.Streak != n {
			t.Fatalf("day %d: expected streak %d, got %d", n, n, s.Streak)
		}
	}
}

func TestStreakResetsAfterSkippedDay(t *testing.T) {
	t.Parallel()
	s := domain.Snapshot{SessionsToday: 2, TotalMinutesToday: 40, Streak: 5, LastSessionDate: today, WeeklyData: [7]int{1, 2, 3, 4, 5, 6, 40}}
	got := mustRecord(t, s, 30, today.AddDays(2))
	if got.Streak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", got.Streak)
	}
	if got.WeeklyData != [7]int{3, 4, 5, 6, 40, 0, 30} {
		t.Fatalf("expected two-slot shift, got %v", got.WeeklyData)
	}
}

func TestWindowInvariantsHoldAcrossRandomWalk(t *testing.T) {
	t.Parallel()
	gaps := []int{0, 0, 1, 0, 3, 1, 1, 0, 9, 2, 0, 1}
	s := domain.DefaultSnapshot()
	day := today
	for i, gap := range gaps {
		day = day.AddDays(gap)
		s = domain.Reconcile(s, day)
		s = mustRecord(t, s, i+1, day)
		if len(s.WeeklyData) != domain.WindowDays {
			t.Fatalf("window length changed: %d", len(s.WeeklyData))
		}
		if s.LastSessionDate == day && s.WeeklyData[6] != s.TotalMinutesToday {
			t.Fatalf("step %d: today slot %d != total %d", i, s.WeeklyData[6], s.TotalMinutesToday)
		}
	}
}

func TestRecordRejectsInvalidSessionWithoutMutation(t *testing.T) {
	t.Parallel()
	s := mustRecord(t, domain.DefaultSnapshot(), 25, today)
	for _, minutes := range []int{0, -5} {
		got, err := domain.Record(s, domain.Session{DurationMinutes: minutes}, today)
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %d, got %v", minutes, err)
		}
		if got != s {
			t.Fatalf("snapshot changed on invalid input: %+v", got)
		}
	}
}

func TestNewSessionValidation(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	for _, bad := range []float64{0, -1, 2.5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := domain.NewSession(bad, at); !errors.Is(err, domain.ErrInvalidSession) {
			t.Fatalf("expected %v to be rejected, got %v", bad, err)
		}
	}
	s, err := domain.NewSession(25, at)
	if err != nil || s.DurationMinutes != 25 || !s.CompletedAt.Equal(at) {
		t.Fatalf("expected valid session, got %+v err=%v", s, err)
	}
}

func TestReconcileSameDayIsIdentity(t *testing.T) {
	t.Parallel()
	s := mustRecord(t, domain.DefaultSnapshot(), 25, today)
	once := domain.Reconcile(s, today)
	twice := domain.Reconcile(once, today)
	if once != s || twice != once {
		t.Fatalf("same-day reconcile must not change state: %+v / %+v", once, twice)
	}
	if fresh := domain.Reconcile(domain.DefaultSnapshot(), today); fresh != domain.DefaultSnapshot() {
		t.Fatalf("default snapshot must already be canonical: %+v", fresh)
	}
}

func TestReconcileYesterdayKeepsStreak(t *testing.T) {
	t.Parallel()
	s := domain.Snapshot{SessionsToday: 2, TotalMinutesToday: 50, Streak: 4, LastSessionDate: today, WeeklyData: [7]int{0, 0, 0, 0, 0, 10, 50}}
	got := domain.Reconcile(s, today.AddDays(1))
	if got.Streak != 4 || got.SessionsToday != 0 || got.TotalMinutesToday != 0 {
		t.Fatalf("unexpected reconciled counters: %+v", got)
	}
	if got.LastSessionDate != today {
		t.Fatalf("reconcile must not advance last session date, got %s", got.LastSessionDate)
	}
	if got.WeeklyData != [7]int{0, 0, 0, 0, 10, 50, 0} {
		t.Fatalf("unexpected window: %v", got.WeeklyData)
	}
}

func TestReconcileGapResetsStreakAndIsIdempotent(t *testing.T) {
	t.Parallel()
	s := domain.Snapshot{SessionsToday: 1, TotalMinutesToday: 30, Streak: 6, LastSessionDate: today, WeeklyData: [7]int{5, 5, 5, 5, 5, 5, 30}}
	later := today.AddDays(3)
	once := domain.Reconcile(s, later)
	twice := domain.Reconcile(once, later)
	if once.Streak != 0 {
		t.Fatalf("expected streak reset after skipped days, got %d", once.Streak)
	}
	if once.WeeklyData != [7]int{5, 5, 5, 30, 0, 0, 0} {
		t.Fatalf("unexpected window: %v", once.WeeklyData)
	}
	if twice != once {
		t.Fatalf("reconcile must be idempotent: %+v vs %+v", twice, once)
	}
	if far := domain.Reconcile(s, today.AddDays(30)); far.WeeklyData != [7]int{} {
		t.Fatalf("expected cleared window after a month, got %v", far.WeeklyData)
	}
}

func TestReconcileThenRecordMatchesDirectRecord(t *testing.T) {
	t.Parallel()
	base := domain.Snapshot{SessionsToday: 2, TotalMinutesToday: 50, Streak: 1, LastSessionDate: today, WeeklyData: [7]int{0, 0, 0, 0, 0, 0, 50}}
	for _, gap := range []int{1, 2, 5} {
		next := today.AddDays(gap)
		direct := mustRecord(t, base, 10, next)
		viaReconcile := mustRecord(t, domain.Reconcile(domain.Reconcile(base, next), next), 10, next)
		if direct != viaReconcile {
			t.Fatalf("gap %d: reconciled path diverged: %+v vs %+v", gap, viaReconcile, direct)
		}
	}
}

func TestSnapshotValidate(t *testing.T) {
	t.Parallel()
	if err := domain.DefaultSnapshot().Validate(); err != nil {
		t.Fatalf("default snapshot should be valid: %v", err)
	}
	if err := (domain.Snapshot{Streak: -1}).Validate(); err == nil {
		t.Fatalf("negative streak should fail")
	}
	if err := (domain.Snapshot{WeeklyData: [7]int{0, -3}}).Validate(); err == nil {
		t.Fatalf("negative slot should fail")
	}
	if err := (domain.Snapshot{LastSessionDate: "yesterday"}).Validate(); err == nil {
		t.Fatalf("malformed date should fail")
	}
}

// One slot per elapsed calendar day, not one slot per reconciliation: after a
// gap the last slot is still today and the earlier slots keep their real dates.
func TestReconcileShiftsOneSlotPerElapsedDay(t *testing.T) {
	t.Parallel()
	s := domain.Snapshot{SessionsToday: 1, TotalMinutesToday: 70, Streak: 4, LastSessionDate: today, WeeklyData: [7]int{10, 20, 30, 40, 50, 60, 70}}

	cases := []struct {
		gap  int
		want [7]int
	}{
		{1, [7]int{20, 30, 40, 50, 60, 70, 0}},
		{3, [7]int{40, 50, 60, 70, 0, 0, 0}},
		{6, [7]int{70, 0, 0, 0, 0, 0, 0}},
		{7, [7]int{}},
		{30, [7]int{}},
	}
	for _, tc := range cases {
		got := domain.Reconcile(s, today.AddDays(tc.gap))
		if got.WeeklyData != tc.want {
			t.Fatalf("gap %d: expected %v, got %v", tc.gap, tc.want, got.WeeklyData)
		}
		if tc.gap > 1 {
			literal := [7]int{20, 30, 40, 50, 60, 70, 0}
			if got.WeeklyData == literal {
				t.Fatalf("gap %d: window shifted a single slot and mislabels the last %d days", tc.gap, tc.gap-1)
			}
		}
		if got.WindowDate != today.AddDays(tc.gap) {
			t.Fatalf("gap %d: window must end on the reconciled day, got %s", tc.gap, got.WindowDate)
		}
	}
}
