package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	focusout "studyhub/internal/modules/focus/adapter/out"
	"studyhub/internal/modules/focus/domain"
)

func TestNoteFocusLogListsNewestFirst(t *testing.T) {
	t.Parallel()
	ws := t.TempDir()
	log := focusout.NewNoteFocusLog(ws)

	if empty, err := log.List(context.Background(), 0); err != nil || len(empty) != 0 {
		t.Fatalf("expected empty history on fresh workspace, got %v err=%v", empty, err)
	}

	base := time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC)
	for i, label := range []string{"Calculus", "History essay", "Spanish"} {
		started := base.Add(time.Duration(i) * 26 * time.Hour)
		_, err := log.Save(context.Background(), domain.Focus{
			ID:          label,
			Label:       label,
			StartedAt:   started,
			EndedAt:     started.Add(25 * time.Minute),
			DurationMin: 25 + i,
			Outcome:     "done",
		})
		if err != nil {
			t.Fatalf("save %s: %v", label, err)
		}
	}
	broken := filepath.Join(ws, "sessions", "2026", "02", "25", "broken.md")
	if err := os.WriteFile(broken, []byte("---\nid: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write broken note: %v", err)
	}

	items, err := log.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(items))
	}
	if items[0].Focus.Label != "Spanish" || items[1].Focus.Label != "History essay" {
		t.Fatalf("expected newest first, got %s, %s", items[0].Focus.Label, items[1].Focus.Label)
	}
	if items[0].Focus.DurationMin != 27 || !items[0].Focus.StartedAt.Equal(base.Add(52*time.Hour)) {
		t.Fatalf("unexpected decoded focus: %+v", items[0].Focus)
	}
}
