package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	statsout "studyhub/internal/modules/stats/port/out"
	"studyhub/internal/platform/atomicfile"
	"studyhub/internal/platform/slug"
)

// FileKeyValueStore keeps one file per key under dir.
type FileKeyValueStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileKeyValueStore(stateDir string) statsout.KeyValueStore {
	return &FileKeyValueStore{dir: filepath.Join(stateDir, "state")}
}

func (s *FileKeyValueStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(payload), true, nil
}

// Set replaces the value atomically; a crash never leaves a half-written
// value behind.
func (s *FileKeyValueStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomicfile.Write(s.pathFor(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileKeyValueStore) pathFor(key string) string {
	return filepath.Join(s.dir, slug.Make(key)+".json")
}
