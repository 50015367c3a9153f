package in

import (
	"context"

	"studyhub/internal/modules/stats/dto"
)

type Usecase interface {
	Current(ctx context.Context) (dto.StatsOutput, error)
	Record(ctx context.Context, input dto.RecordInput) (dto.StatsOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
