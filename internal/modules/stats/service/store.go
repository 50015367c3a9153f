package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"studyhub/internal/modules/stats/domain"
	statsout "studyhub/internal/modules/stats/port/out"
)

// StorageKey is the fixed key the snapshot is stored under.
const StorageKey = "studyhub.stats"

// snapshotRecord is the persisted JSON shape.
type snapshotRecord struct {
	SessionsToday     int    `json:"sessionsToday"`
	TotalMinutesToday int    `json:"totalMinutesToday"`
	Streak            int    `json:"streak"`
	LastSessionDate   string `json:"lastSessionDate,omitempty"`
	WeeklyData        []int  `json:"weeklyData"`
}

type StatsStore struct {
	kv     statsout.KeyValueStore
	logger zerolog.Logger
}

func NewStatsStore(kv statsout.KeyValueStore, logger zerolog.Logger) *StatsStore {
	return &StatsStore{kv: kv, logger: logger.With().Str("component", "stats_store").Logger()}
}

// Load never fails: missing, unreadable or corrupt state yields the default
// snapshot.
func (s *StatsStore) Load(ctx context.Context) domain.Snapshot {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		s.logger.Error().Err(err).Str("key", StorageKey).Msg("read stats, starting from empty snapshot")
		return domain.DefaultSnapshot()
	}
	if !ok {
		return domain.DefaultSnapshot()
	}
	snapshot, err := DecodeSnapshot(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", StorageKey).Msg("malformed stats, starting from empty snapshot")
		return domain.DefaultSnapshot()
	}
	return snapshot
}

// Persist writes the snapshot. Snapshots that never recorded a session are
// not written.
func (s *StatsStore) Persist(ctx context.Context, snapshot domain.Snapshot) error {
	if snapshot.LastSessionDate.IsZero() {
		return nil
	}
	raw, err := EncodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	s.logger.Debug().Str("last_session_date", snapshot.LastSessionDate.String()).Int("streak", snapshot.Streak).Msg("stats persisted")
	return nil
}

func EncodeSnapshot(snapshot domain.Snapshot) (string, error) {
	record := snapshotRecord{
		SessionsToday:     snapshot.SessionsToday,
		TotalMinutesToday: snapshot.TotalMinutesToday,
		Streak:            snapshot.Streak,
		LastSessionDate:   snapshot.LastSessionDate.String(),
		WeeklyData:        snapshot.WeeklyData[:],
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode stats: %w", err)
	}
	return string(payload), nil
}

func DecodeSnapshot(raw string) (domain.Snapshot, error) {
	record := snapshotRecord{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode stats: %w", err)
	}
	if len(record.WeeklyData) != domain.WindowDays {
		return domain.Snapshot{}, fmt.Errorf("decode stats: weekly data has %d slots, want %d", len(record.WeeklyData), domain.WindowDays)
	}
	snapshot := domain.Snapshot{
		SessionsToday:     record.SessionsToday,
		TotalMinutesToday: record.TotalMinutesToday,
		Streak:            record.Streak,
		LastSessionDate:   domain.Day(record.LastSessionDate),
		WindowDate:        domain.Day(record.LastSessionDate),
	}
	copy(snapshot.WeeklyData[:], record.WeeklyData)
	if err := snapshot.Validate(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode stats: %w", err)
	}
	// The window is persisted ending on lastSessionDate, so its last slot
	// holds that day's total.
	if !snapshot.LastSessionDate.IsZero() && snapshot.WeeklyData[domain.WindowDays-1] != snapshot.TotalMinutesToday {
		return domain.Snapshot{}, fmt.Errorf("decode stats: last weekly slot %d disagrees with totalMinutesToday %d",
			snapshot.WeeklyData[domain.WindowDays-1], snapshot.TotalMinutesToday)
	}
	return snapshot, nil
}
