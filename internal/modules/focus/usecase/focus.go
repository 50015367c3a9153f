package usecase

import (
	"context"
	"errors"
	"fmt"

	focusdto "studyhub/internal/modules/focus/dto"
	focusin "studyhub/internal/modules/focus/port/in"
	focusout "studyhub/internal/modules/focus/port/out"
	"studyhub/internal/modules/focus/service"
	statsdto "studyhub/internal/modules/stats/dto"
	statsin "studyhub/internal/modules/stats/port/in"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/tx"
)

type Interactor struct {
	svc         *service.FocusService
	stats       statsin.Usecase
	activeStore focusout.ActiveFocusStore
	tx          tx.Manager
}

func NewInteractor(svc *service.FocusService, stats statsin.Usecase, activeStore focusout.ActiveFocusStore, txm tx.Manager) focusin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, stats: stats, activeStore: activeStore, tx: txm}
}

func (i *Interactor) Start(ctx context.Context, input focusdto.StartInput) (focusdto.StartOutput, error) {
	_, err := i.activeStore.LoadActive(ctx)
	if err == nil {
		return focusdto.StartOutput{}, apperrors.ErrActiveFocusExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveFocus) {
		return focusdto.StartOutput{}, err
	}

	active, err := i.svc.Start(ctx, input.Label, input.Goal, input.PlannedMinutes)
	if err != nil {
		return focusdto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return focusdto.StartOutput{}, err
	}
	return focusdto.StartOutput{FocusID: active.FocusID, Label: active.Label, PlannedMinutes: active.PlannedMinutes, StartedAt: active.StartedAt}, nil
}

// End completes the active focus: it logs a note, clears the active marker
// and records the session into stats, in that order. Recording is the last
// step that can fail; when it does, the note is removed and the focus is
// restored, so a retry cannot count the session twice. A focus shorter than a
// minute stays active.
func (i *Interactor) End(ctx context.Context, input focusdto.EndInput) (focusdto.EndOutput, error) {
	if i.stats == nil {
		return focusdto.EndOutput{}, fmt.Errorf("stats usecase is not configured")
	}
	out := focusdto.EndOutput{}
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		active, err := i.activeStore.LoadActive(ctx)
		if err != nil {
			return err
		}
		if input.FocusID != "" && input.FocusID != active.FocusID {
			return fmt.Errorf("%w: focus id mismatch", apperrors.ErrInvalidInput)
		}
		focus, err := i.svc.Complete(active, input.Outcome)
		if err != nil {
			return err
		}

		path, err := i.svc.Log(ctx, focus)
		if err != nil {
			return err
		}
		if err := i.activeStore.ClearActive(ctx); err != nil {
			return errors.Join(err, i.svc.Discard(ctx, path))
		}
		stats, err := i.stats.Record(ctx, statsdto.RecordInput{DurationMinutes: float64(focus.DurationMin), CompletedAt: focus.EndedAt})
		if err != nil {
			return errors.Join(
				fmt.Errorf("record focus stats: %w", err),
				i.svc.Discard(ctx, path),
				i.activeStore.SaveActive(ctx, active),
			)
		}

		out = focusdto.EndOutput{
			FocusID:           focus.ID,
			Label:             focus.Label,
			Path:              path,
			DurationMin:       focus.DurationMin,
			SessionsToday:     stats.SessionsToday,
			TotalMinutesToday: stats.TotalMinutesToday,
			Streak:            stats.Streak,
		}
		return nil
	})
	if err != nil {
		return focusdto.EndOutput{}, err
	}
	return out, nil
}

// Cancel drops the active focus without recording it. An unreadable active
// focus file is dropped too, since nothing else can clear it.
func (i *Interactor) Cancel(ctx context.Context) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		if _, err := i.activeStore.LoadActive(ctx); err != nil && !errors.Is(err, apperrors.ErrCorruptState) {
			return err
		}
		return i.activeStore.ClearActive(ctx)
	})
}

func (i *Interactor) GetActive(ctx context.Context) (focusdto.ActiveFocusOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return focusdto.ActiveFocusOutput{}, err
	}
	return focusdto.ActiveFocusOutput{
		FocusID:        active.FocusID,
		Label:          active.Label,
		Goal:           active.Goal,
		PlannedMinutes: active.PlannedMinutes,
		StartedAt:      active.StartedAt,
	}, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]focusdto.HistoryEntry, error) {
	logged, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]focusdto.HistoryEntry, 0, len(logged))
	for _, item := range logged {
		out = append(out, focusdto.HistoryEntry{
			FocusID:     item.Focus.ID,
			Label:       item.Focus.Label,
			StartedAt:   item.Focus.StartedAt,
			DurationMin: item.Focus.DurationMin,
			Outcome:     item.Focus.Outcome,
			Path:        item.Path,
		})
	}
	return out, nil
}
