package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"studyhub/internal/modules/stats/domain"
	"studyhub/internal/platform/clock"
)

// Tracker owns the in-memory snapshot. It is reconciled on Open and after
// that only changes through Record.
type Tracker struct {
	mu       sync.Mutex
	store    *StatsStore
	clock    clock.Clock
	logger   zerolog.Logger
	snapshot domain.Snapshot
	opened   bool
}

func NewTracker(store *StatsStore, clk clock.Clock, logger zerolog.Logger) *Tracker {
	return &Tracker{store: store, clock: clk, logger: logger.With().Str("component", "stats_tracker").Logger()}
}

// Open loads the persisted snapshot and reconciles it against today.
func (t *Tracker) Open(ctx context.Context) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.load(ctx)
	return t.snapshot
}

// Snapshot returns the current in-memory snapshot.
func (t *Tracker) Snapshot(ctx context.Context) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureOpen(ctx)
	return t.snapshot
}

// Reconcile re-normalizes the in-memory snapshot against the current day.
// Long-running callers use it after midnight passes.
func (t *Tracker) Reconcile(ctx context.Context) domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureOpen(ctx)
	t.snapshot = domain.Reconcile(t.snapshot, domain.DayOf(t.clock.Now()))
	return t.snapshot
}

// Record applies a completed session and persists the result. The in-memory
// snapshot only changes when the write succeeds.
func (t *Tracker) Record(ctx context.Context, session domain.Session) (domain.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureOpen(ctx)
	if err := session.Validate(); err != nil {
		return t.snapshot, err
	}
	today := domain.DayOf(t.clock.Now())
	next, err := domain.Record(t.snapshot, session, today)
	if err != nil {
		return t.snapshot, err
	}
	if err := t.store.Persist(ctx, next); err != nil {
		t.logger.Error().Err(err).Int("duration_minutes", session.DurationMinutes).Msg("session not recorded")
		return t.snapshot, err
	}
	t.snapshot = next
	t.logger.Info().
		Int("duration_minutes", session.DurationMinutes).
		Int("sessions_today", next.SessionsToday).
		Int("streak", next.Streak).
		Msg("session recorded")
	return next, nil
}

func (t *Tracker) ensureOpen(ctx context.Context) {
	if !t.opened {
		t.load(ctx)
	}
}

func (t *Tracker) load(ctx context.Context) {
	loaded := t.store.Load(ctx)
	today := domain.DayOf(t.clock.Now())
	t.snapshot = domain.Reconcile(loaded, today)
	t.opened = true
	if t.snapshot != loaded {
		t.logger.Info().
			Str("last_session_date", loaded.LastSessionDate.String()).
			Str("today", today.String()).
			Int("streak_before", loaded.Streak).
			Int("streak_after", t.snapshot.Streak).
			Msg("stats rolled over to a new day")
	}
}
