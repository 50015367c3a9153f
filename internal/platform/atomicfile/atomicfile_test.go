package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"studyhub/internal/platform/atomicfile"
)

func TestWriteReplacesAndLeavesNoTemp(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")
	for _, v := range []string{"one", "two"} {
		if err := atomicfile.Write(path, []byte(v), 0o644); err != nil {
			t.Fatalf("write %s: %v", v, err)
		}
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "two" {
		t.Fatalf("unexpected content %q err=%v", b, err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file, got %d entries", len(entries))
	}
}

func TestWriteFailsWhenParentIsAFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}
	if err := atomicfile.Write(filepath.Join(blocker, "state.json"), []byte("v"), 0o644); err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}
