package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studyhub/internal/modules/focus/domain"
	focusout "studyhub/internal/modules/focus/port/out"
	"studyhub/internal/platform/atomicfile"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
)

const activeFocusFile = "active-focus.json"

// activeFocusEnvelope is the on-disk layout of the running timer.
type activeFocusEnvelope struct {
	SchemaVersion int                `json:"schema_version"`
	Focus         domain.ActiveFocus `json:"focus"`
}

// FileActiveFocusStore keeps the running focus in one JSON file under the
// state dir. A file that cannot be trusted is reported as ErrCorruptState so
// the caller can drop it; it is never silently treated as "no focus".
type FileActiveFocusStore struct {
	path  string
	clock clock.Clock
}

func NewFileActiveFocusStore(stateDir string, clk clock.Clock) focusout.ActiveFocusStore {
	return &FileActiveFocusStore{path: filepath.Join(stateDir, activeFocusFile), clock: clk}
}

func (s *FileActiveFocusStore) SaveActive(_ context.Context, focus domain.ActiveFocus) error {
	payload, err := json.MarshalIndent(activeFocusEnvelope{SchemaVersion: domain.SchemaVersion, Focus: focus}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode active focus %s: %w", focus.FocusID, err)
	}
	if err := atomicfile.Write(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("save active focus %s: %w", focus.FocusID, err)
	}
	return nil
}

func (s *FileActiveFocusStore) LoadActive(_ context.Context) (domain.ActiveFocus, error) {
	payload, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return domain.ActiveFocus{}, apperrors.ErrNoActiveFocus
	}
	if err != nil {
		return domain.ActiveFocus{}, fmt.Errorf("load active focus: %w", err)
	}

	envelope := activeFocusEnvelope{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return domain.ActiveFocus{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptState, activeFocusFile, err)
	}
	if envelope.SchemaVersion != domain.SchemaVersion {
		return domain.ActiveFocus{}, fmt.Errorf("%w: %s has schema version %d, want %d", apperrors.ErrCorruptState, activeFocusFile, envelope.SchemaVersion, domain.SchemaVersion)
	}
	if err := envelope.Focus.Validate(s.clock.Now()); err != nil {
		return domain.ActiveFocus{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptState, activeFocusFile, err)
	}
	return envelope.Focus, nil
}

func (s *FileActiveFocusStore) ClearActive(_ context.Context) error {
	err := os.Remove(s.path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return fmt.Errorf("clear active focus: %w", err)
}
