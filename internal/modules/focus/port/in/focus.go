package in

import (
	"context"

	"studyhub/internal/modules/focus/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.EndOutput, error)
	Cancel(ctx context.Context) error
	GetActive(ctx context.Context) (dto.ActiveFocusOutput, error)
	History(ctx context.Context, limit int) ([]dto.HistoryEntry, error)
}
