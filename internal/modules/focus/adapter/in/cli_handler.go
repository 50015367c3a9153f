package in

import (
	"context"

	focusdto "studyhub/internal/modules/focus/dto"
	focusin "studyhub/internal/modules/focus/port/in"
)

type CLIHandler struct {
	usecase focusin.Usecase
}

func NewCLIHandler(usecase focusin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, label, goal string, plannedMinutes int) (focusdto.StartOutput, error) {
	return h.usecase.Start(ctx, focusdto.StartInput{Label: label, Goal: goal, PlannedMinutes: plannedMinutes})
}

func (h CLIHandler) End(ctx context.Context, focusID, outcome string) (focusdto.EndOutput, error) {
	return h.usecase.End(ctx, focusdto.EndInput{FocusID: focusID, Outcome: outcome})
}

func (h CLIHandler) Cancel(ctx context.Context) error {
	return h.usecase.Cancel(ctx)
}

func (h CLIHandler) GetActive(ctx context.Context) (focusdto.ActiveFocusOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]focusdto.HistoryEntry, error) {
	return h.usecase.History(ctx, limit)
}
