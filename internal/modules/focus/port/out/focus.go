package out

import (
	"context"

	"studyhub/internal/modules/focus/domain"
)

type FocusLog interface {
	Save(ctx context.Context, focus domain.Focus) (string, error)
	// List returns logged sessions newest first, keyed by note path.
	List(ctx context.Context, limit int) ([]LoggedFocus, error)
	// Remove deletes a note written by Save. A missing note is not an error.
	Remove(ctx context.Context, path string) error
}

type LoggedFocus struct {
	Path  string
	Focus domain.Focus
}

type ActiveFocusStore interface {
	SaveActive(ctx context.Context, focus domain.ActiveFocus) error
	LoadActive(ctx context.Context) (domain.ActiveFocus, error)
	ClearActive(ctx context.Context) error
}
