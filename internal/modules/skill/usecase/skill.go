package usecase

import (
	"context"
	"fmt"
	"time"

	"tenk/internal/modules/skill/domain"
	"tenk/internal/modules/skill/dto"
	skillin "tenk/internal/modules/skill/port/in"
	skillout "tenk/internal/modules/skill/port/out"
	"tenk/internal/modules/skill/service"
	apperrors "tenk/internal/platform/errors"
)

type Interactor struct {
	svc    *service.SkillService
	usage  skillout.SessionUsage
	active skillout.ActiveProbe
}

func NewInteractor(svc *service.SkillService, usage skillout.SessionUsage, active skillout.ActiveProbe) skillin.Usecase {
	return &Interactor{svc: svc, usage: usage, active: active}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.SkillOutput, error) {
	skill, err := i.svc.Create(ctx, input.Name, input.PaletteID, input.ColorIndex)
	if err != nil {
		return dto.SkillOutput{}, err
	}
	return dto.SkillOutput{
		ID:         skill.ID,
		Name:       skill.Name,
		PaletteID:  skill.PaletteID,
		ColorIndex: skill.ColorIndex,
		CreatedAt:  skill.CreatedAt,
	}, nil
}

func (i *Interactor) Rename(ctx context.Context, input dto.RenameInput) (dto.SkillOutput, error) {
	skill, err := i.svc.Rename(ctx, input.SkillID, input.NewName)
	if err != nil {
		return dto.SkillOutput{}, err
	}
	return i.toOutput(ctx, skill)
}

func (i *Interactor) SetTarget(ctx context.Context, input dto.SetTargetInput) (dto.SkillDetailOutput, error) {
	skill, err := i.svc.SetTarget(ctx, input.SkillID, input.HoursPerWeek)
	if err != nil {
		return dto.SkillDetailOutput{}, err
	}
	return i.toDetail(ctx, skill)
}

func (i *Interactor) SetColor(ctx context.Context, input dto.SetColorInput) (dto.SkillDetailOutput, error) {
	skill, err := i.svc.SetColor(ctx, input.SkillID, input.PaletteID, input.ColorIndex)
	if err != nil {
		return dto.SkillDetailOutput{}, err
	}
	return i.toDetail(ctx, skill)
}

func (i *Interactor) List(ctx context.Context) ([]dto.SkillOutput, error) {
	skills, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SkillOutput, 0, len(skills))
	for _, skill := range skills {
		item, err := i.toOutput(ctx, skill)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, skillID string) (dto.SkillDetailOutput, error) {
	skill, err := i.svc.Get(ctx, skillID)
	if err != nil {
		return dto.SkillDetailOutput{}, err
	}
	return i.toDetail(ctx, skill)
}

func (i *Interactor) Delete(ctx context.Context, skillID string) error {
	if i.active != nil {
		activeID, err := i.active.ActiveSkillID(ctx)
		if err != nil {
			return err
		}
		if activeID == skillID {
			return fmt.Errorf("%w: stop tracking first", apperrors.ErrSkillTracking)
		}
	}
	if err := i.svc.Delete(ctx, skillID); err != nil {
		return err
	}
	if i.usage != nil {
		return i.usage.PurgeSkill(ctx, skillID)
	}
	return nil
}

func (i *Interactor) totals(ctx context.Context, skillID string) (int64, int, time.Time, error) {
	if i.usage == nil {
		return 0, 0, time.Time{}, nil
	}
	return i.usage.SkillTotals(ctx, skillID)
}

func (i *Interactor) toOutput(ctx context.Context, skill domain.Skill) (dto.SkillOutput, error) {
	seconds, count, _, err := i.totals(ctx, skill.ID)
	if err != nil {
		return dto.SkillOutput{}, err
	}
	return dto.SkillOutput{
		ID:           skill.ID,
		Name:         skill.Name,
		PaletteID:    skill.PaletteID,
		ColorIndex:   skill.ColorIndex,
		TotalSeconds: seconds,
		Progress:     domain.Progress(seconds),
		SessionCount: count,
		CreatedAt:    skill.CreatedAt,
	}, nil
}

func (i *Interactor) toDetail(ctx context.Context, skill domain.Skill) (dto.SkillDetailOutput, error) {
	seconds, count, last, err := i.totals(ctx, skill.ID)
	if err != nil {
		return dto.SkillDetailOutput{}, err
	}
	return dto.SkillDetailOutput{
		ID:                skill.ID,
		Name:              skill.Name,
		PaletteID:         skill.PaletteID,
		ColorIndex:        skill.ColorIndex,
		WeeklyTargetHours: skill.WeeklyTargetHours,
		TotalSeconds:      seconds,
		Progress:          domain.Progress(seconds),
		SessionCount:      count,
		LastPracticedAt:   last,
		CreatedAt:         skill.CreatedAt,
	}, nil
}
