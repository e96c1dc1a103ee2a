package in

import (
	"context"

	"tenk/internal/modules/skill/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.SkillOutput, error)
	Rename(ctx context.Context, input dto.RenameInput) (dto.SkillOutput, error)
	SetTarget(ctx context.Context, input dto.SetTargetInput) (dto.SkillDetailOutput, error)
	SetColor(ctx context.Context, input dto.SetColorInput) (dto.SkillDetailOutput, error)
	List(ctx context.Context) ([]dto.SkillOutput, error)
	Get(ctx context.Context, skillID string) (dto.SkillDetailOutput, error)
	Delete(ctx context.Context, skillID string) error
}
