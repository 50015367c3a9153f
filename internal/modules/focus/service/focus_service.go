package service

import (
	"context"
	"fmt"
	"strings"

	"studyhub/internal/modules/focus/domain"
	focusout "studyhub/internal/modules/focus/port/out"
	"studyhub/internal/platform/clock"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
)

type FocusService struct {
	clock clock.Clock
	idGen id.Generator
	log   focusout.FocusLog
}

func NewFocusService(clock clock.Clock, idGen id.Generator, log focusout.FocusLog) *FocusService {
	return &FocusService{clock: clock, idGen: idGen, log: log}
}

func (s *FocusService) Start(_ context.Context, label, goal string, plannedMinutes int) (domain.ActiveFocus, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.ActiveFocus{}, fmt.Errorf("%w: focus label is required", apperrors.ErrInvalidInput)
	}
	if plannedMinutes < 0 {
		return domain.ActiveFocus{}, fmt.Errorf("%w: planned minutes must be non-negative", apperrors.ErrInvalidInput)
	}
	return domain.ActiveFocus{
		FocusID:        s.idGen.New(),
		Label:          label,
		Goal:           goal,
		PlannedMinutes: plannedMinutes,
		StartedAt:      s.clock.Now(),
	}, nil
}

// Complete stops the timer. Sessions under a minute are not counted.
func (s *FocusService) Complete(active domain.ActiveFocus, outcome string) (domain.Focus, error) {
	endedAt := s.clock.Now()
	duration := active.ElapsedMinutes(endedAt)
	if duration < 1 {
		return domain.Focus{}, apperrors.ErrFocusTooShort
	}
	return domain.Focus{
		ID:             active.FocusID,
		Label:          active.Label,
		Goal:           active.Goal,
		PlannedMinutes: active.PlannedMinutes,
		StartedAt:      active.StartedAt,
		EndedAt:        endedAt,
		DurationMin:    duration,
		Outcome:        outcome,
	}, nil
}

func (s *FocusService) Log(ctx context.Context, focus domain.Focus) (string, error) {
	return s.log.Save(ctx, focus)
}

// Discard removes a note logged for a focus whose completion was rolled back.
func (s *FocusService) Discard(ctx context.Context, path string) error {
	return s.log.Remove(ctx, path)
}

func (s *FocusService) History(ctx context.Context, limit int) ([]focusout.LoggedFocus, error) {
	return s.log.List(ctx, limit)
}
