package in

import (
	"context"
	"time"

	statsdto "studyhub/internal/modules/stats/dto"
	statsin "studyhub/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (statsdto.StatsOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Record(ctx context.Context, minutes float64) (statsdto.StatsOutput, error) {
	return h.usecase.Record(ctx, statsdto.RecordInput{DurationMinutes: minutes, CompletedAt: time.Time{}})
}

func (h CLIHandler) Export(ctx context.Context, path string) (statsdto.ExportOutput, error) {
	return h.usecase.Export(ctx, statsdto.ExportInput{Path: path})
}
