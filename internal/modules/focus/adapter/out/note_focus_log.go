package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"studyhub/internal/modules/focus/domain"
	focusout "studyhub/internal/modules/focus/port/out"
	"studyhub/internal/platform/markdown"
	"studyhub/internal/platform/slug"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// NoteFocusLog writes one markdown note per completed focus session under
// <workspace>/sessions/YYYY/MM/DD.
type NoteFocusLog struct {
	workspace string
}

func NewNoteFocusLog(workspace string) focusout.FocusLog {
	return &NoteFocusLog{workspace: workspace}
}

func (s *NoteFocusLog) Save(_ context.Context, focus domain.Focus) (string, error) {
	date := focus.StartedAt
	dir := filepath.Join(s.root(), date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(focus.Label))
	path := filepath.Join(dir, name)

	meta := noteMeta{
		SchemaVersion:   domain.SchemaVersion,
		ID:              focus.ID,
		Label:           focus.Label,
		StartedAt:       focus.StartedAt.Format(timeLayout),
		EndedAt:         focus.EndedAt.Format(timeLayout),
		DurationMinutes: focus.DurationMin,
		PlannedMinutes:  focus.PlannedMinutes,
		Goal:            focus.Goal,
		Outcome:         focus.Outcome,
	}
	body := fmt.Sprintf("# Focus: %s\n\n- Duration: %d minutes\n\n## Goal\n\n%s\n\n## Outcome\n\n%s\n", focus.Label, focus.DurationMin, focus.Goal, focus.Outcome)
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}

// List skips notes whose frontmatter cannot be read; hand-edited notes must
// not break history.
func (s *NoteFocusLog) List(_ context.Context, limit int) ([]focusout.LoggedFocus, error) {
	out := []focusout.LoggedFocus{}
	err := filepath.WalkDir(s.root(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read session note: %w", err)
		}
		meta := noteMeta{}
		if _, err := markdown.DecodeFrontmatter(string(raw), &meta); err != nil {
			return nil
		}
		focus, ok := meta.toDomain()
		if !ok {
			return nil
		}
		out = append(out, focusout.LoggedFocus{Path: path, Focus: focus})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list session notes: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Focus.StartedAt.After(out[j].Focus.StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *NoteFocusLog) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session note: %w", err)
	}
	return nil
}

func (s *NoteFocusLog) root() string {
	return filepath.Join(s.workspace, "sessions")
}

type noteMeta struct {
	SchemaVersion   int    `yaml:"schema_version"`
	ID              string `yaml:"id"`
	Label           string `yaml:"label"`
	StartedAt       string `yaml:"started_at"`
	EndedAt         string `yaml:"ended_at"`
	DurationMinutes int    `yaml:"duration_minutes"`
	PlannedMinutes  int    `yaml:"planned_minutes"`
	Goal            string `yaml:"goal"`
	Outcome         string `yaml:"outcome"`
}

func (m noteMeta) toDomain() (domain.Focus, bool) {
	if m.ID == "" {
		return domain.Focus{}, false
	}
	started, err := time.Parse(timeLayout, m.StartedAt)
	if err != nil {
		return domain.Focus{}, false
	}
	ended, _ := time.Parse(timeLayout, m.EndedAt)
	return domain.Focus{
		ID:             m.ID,
		Label:          m.Label,
		Goal:           m.Goal,
		PlannedMinutes: m.PlannedMinutes,
		StartedAt:      started,
		EndedAt:        ended,
		DurationMin:    m.DurationMinutes,
		Outcome:        m.Outcome,
	}, true
}
