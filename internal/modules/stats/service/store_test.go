package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"studyhub/internal/modules/stats/domain"
	"studyhub/internal/modules/stats/service"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	t.Parallel()
	store := service.NewStatsStore(newMemKV(), zerolog.Nop())
	if got := store.Load(context.Background()); got != domain.DefaultSnapshot() {
		t.Fatalf("expected default snapshot, got %+v", got)
	}
}

func TestLoadMalformedReturnsDefault(t *testing.T) {
	t.Parallel()
	cases := []string{
		"{not json",
		`{"sessionsToday":1,"weeklyData":[1,2,3]}`,
		`{"sessionsToday":-1,"weeklyData":[0,0,0,0,0,0,0]}`,
		`{"lastSessionDate":"soon","weeklyData":[0,0,0,0,0,0,0]}`,
		`[]`,
		`{"sessionsToday":1,"totalMinutesToday":25,"streak":1,"lastSessionDate":"2026-02-25","weeklyData":[0,0,0,0,0,0,40]}`,
	}
	for _, raw := range cases {
		kv := newMemKV()
		kv.values[service.StorageKey] = raw
		var logs strings.Builder
		store := service.NewStatsStore(kv, zerolog.New(&logs))
		if got := store.Load(context.Background()); got != domain.DefaultSnapshot() {
			t.Fatalf("%q: expected default snapshot, got %+v", raw, got)
		}
		if !strings.Contains(logs.String(), "malformed stats") {
			t.Fatalf("%q: expected a warning to be logged, got %q", raw, logs.String())
		}
	}
}

func TestLoadReadErrorReturnsDefault(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	kv.getErr = errDiskFull
	store := service.NewStatsStore(kv, zerolog.Nop())
	if got := store.Load(context.Background()); got != domain.DefaultSnapshot() {
		t.Fatalf("expected default snapshot on read error, got %+v", got)
	}
}

func TestPersistSkipsNeverRecordedSnapshot(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	store := service.NewStatsStore(kv, zerolog.Nop())
	if err := store.Persist(context.Background(), domain.DefaultSnapshot()); err != nil {
		t.Fatalf("persist default: %v", err)
	}
	if kv.setHits != 0 {
		t.Fatalf("default snapshot must not be written, got %d writes", kv.setHits)
	}
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	kv := newMemKV()
	store := service.NewStatsStore(kv, zerolog.Nop())
	snapshot := domain.Snapshot{
		SessionsToday:     2,
		TotalMinutesToday: 50,
		Streak:            3,
		LastSessionDate:   "2026-02-25",
		WeeklyData:        [7]int{10, 0, 20, 0, 0, 25, 50},
	}
	if err := store.Persist(context.Background(), snapshot); err != nil {
		t.Fatalf("persist: %v", err)
	}
	raw := kv.values[service.StorageKey]
	for _, field := range []string{`"sessionsToday":2`, `"totalMinutesToday":50`, `"lastSessionDate":"2026-02-25"`, `"weeklyData":[10,0,20,0,0,25,50]`} {
		if !strings.Contains(raw, field) {
			t.Fatalf("persisted payload missing %s: %s", field, raw)
		}
	}
	got := store.Load(context.Background())
	snapshot.WindowDate = snapshot.LastSessionDate
	if got != snapshot {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, snapshot)
	}
}

func TestDecodeRejectsLastSlotThatDisagreesWithTodayTotal(t *testing.T) {
	t.Parallel()
	const mismatched = `{"sessionsToday":2,"totalMinutesToday":50,"streak":3,"lastSessionDate":"2026-02-25","weeklyData":[10,0,20,0,0,25,45]}`
	if _, err := service.DecodeSnapshot(mismatched); err == nil || !strings.Contains(err.Error(), "disagrees") {
		t.Fatalf("expected mismatch to be rejected, got %v", err)
	}
	const consistent = `{"sessionsToday":2,"totalMinutesToday":50,"streak":3,"lastSessionDate":"2026-02-25","weeklyData":[10,0,20,0,0,25,50]}`
	got, err := service.DecodeSnapshot(consistent)
	if err != nil {
		t.Fatalf("decode consistent snapshot: %v", err)
	}
	if got.WeeklyData[6] != got.TotalMinutesToday || got.WindowDate != got.LastSessionDate {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}
