package in

import (
	"context"

	"tenk/internal/modules/stats/dto"
)

type Usecase interface {
	Pace(ctx context.Context, skillID string) (dto.PaceOutput, error)
	Target(ctx context.Context, skillID string) (dto.TargetOutput, error)
	Heatmap(ctx context.Context, skillID string, weeks int) (dto.HeatmapOutput, error)
	Summary(ctx context.Context, skillID string) (dto.SummaryOutput, error)
}
