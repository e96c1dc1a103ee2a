package in

import (
	"context"
	"time"

	trackerdto "tenk/internal/modules/tracker/dto"
	trackerin "tenk/internal/modules/tracker/port/in"
)

type CLIHandler struct {
	usecase trackerin.Usecase
}

func NewCLIHandler(usecase trackerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, skillID string) (trackerdto.StartOutput, error) {
	return h.usecase.Start(ctx, trackerdto.StartInput{SkillID: skillID})
}

func (h CLIHandler) Pause(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (trackerdto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (trackerdto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Log(ctx context.Context, skillID string, startedAt time.Time, durationSeconds int64) (trackerdto.SessionOutput, error) {
	return h.usecase.Log(ctx, trackerdto.LogInput{SkillID: skillID, StartedAt: startedAt, DurationSeconds: durationSeconds})
}

func (h CLIHandler) Sessions(ctx context.Context, skillID string) ([]trackerdto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx, skillID)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}
