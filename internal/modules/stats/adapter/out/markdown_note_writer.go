package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	statsout "studyhub/internal/modules/stats/port/out"
	"studyhub/internal/platform/markdown"
)

// MarkdownNoteWriter resolves relative note paths against the workspace.
type MarkdownNoteWriter struct {
	workspace string
}

func NewMarkdownNoteWriter(workspace string) statsout.NoteWriter {
	return &MarkdownNoteWriter{workspace: workspace}
}

func (w *MarkdownNoteWriter) WriteManagedBlock(_ context.Context, path, startMarker, endMarker, block string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.workspace, path)
	}
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("read note: %w", err)
	}
	if current, ok := markdown.ManagedBlock(string(existing), startMarker, endMarker); ok && current == block {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	body := markdown.ReplaceManagedBlock(string(existing), startMarker, endMarker, block)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return path, nil
}
