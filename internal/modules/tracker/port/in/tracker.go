package in

import (
	"context"

	"tenk/internal/modules/tracker/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Resume(ctx context.Context) (dto.StatusOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Log(ctx context.Context, input dto.LogInput) (dto.SessionOutput, error)
	ListSessions(ctx context.Context, skillID string) ([]dto.SessionOutput, error)
	Reindex(ctx context.Context) (int, error)
}
