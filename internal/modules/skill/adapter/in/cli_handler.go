package in

import (
	"context"

	"tenk/internal/modules/skill/dto"
	skillin "tenk/internal/modules/skill/port/in"
)

type CLIHandler struct {
	usecase skillin.Usecase
}

func NewCLIHandler(usecase skillin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name, paletteID string, colorIndex int) (dto.SkillOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, PaletteID: paletteID, ColorIndex: colorIndex})
}

func (h CLIHandler) Rename(ctx context.Context, skillID, newName string) (dto.SkillOutput, error) {
	return h.usecase.Rename(ctx, dto.RenameInput{SkillID: skillID, NewName: newName})
}

func (h CLIHandler) SetTarget(ctx context.Context, skillID string, hoursPerWeek float64) (dto.SkillDetailOutput, error) {
	return h.usecase.SetTarget(ctx, dto.SetTargetInput{SkillID: skillID, HoursPerWeek: hoursPerWeek})
}

func (h CLIHandler) SetColor(ctx context.Context, skillID, paletteID string, colorIndex int) (dto.SkillDetailOutput, error) {
	return h.usecase.SetColor(ctx, dto.SetColorInput{SkillID: skillID, PaletteID: paletteID, ColorIndex: colorIndex})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.SkillOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, skillID string) (dto.SkillDetailOutput, error) {
	return h.usecase.Get(ctx, skillID)
}

func (h CLIHandler) Delete(ctx context.Context, skillID string) error {
	return h.usecase.Delete(ctx, skillID)
}
