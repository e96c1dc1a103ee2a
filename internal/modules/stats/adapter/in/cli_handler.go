package in

import (
	"context"

	statsdto "tenk/internal/modules/stats/dto"
	statsin "tenk/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Pace(ctx context.Context, skillID string) (statsdto.PaceOutput, error) {
	return h.usecase.Pace(ctx, skillID)
}

func (h CLIHandler) Target(ctx context.Context, skillID string) (statsdto.TargetOutput, error) {
	return h.usecase.Target(ctx, skillID)
}

func (h CLIHandler) Heatmap(ctx context.Context, skillID string, weeks int) (statsdto.HeatmapOutput, error) {
	return h.usecase.Heatmap(ctx, skillID, weeks)
}

func (h CLIHandler) Summary(ctx context.Context, skillID string) (statsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, skillID)
}
