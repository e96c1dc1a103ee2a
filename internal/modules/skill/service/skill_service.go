package service

import (
	"context"
	"fmt"

	"tenk/internal/modules/skill/domain"
	skillout "tenk/internal/modules/skill/port/out"
	"tenk/internal/platform/clock"
	apperrors "tenk/internal/platform/errors"
	"tenk/internal/platform/id"
)

type SkillService struct {
	clock clock.Clock
	idGen id.Generator
	store skillout.SkillStore
}

func NewSkillService(clock clock.Clock, idGen id.Generator, store skillout.SkillStore) *SkillService {
	return &SkillService{clock: clock, idGen: idGen, store: store}
}

func (s *SkillService) Create(ctx context.Context, name, paletteID string, colorIndex int) (domain.Skill, error) {
	name = domain.NormalizeName(name)
	if err := domain.ValidateName(name); err != nil {
		return domain.Skill{}, err
	}
	if err := s.ensureUnique(ctx, name, ""); err != nil {
		return domain.Skill{}, err
	}
	skill := domain.Skill{
		ID:         s.idGen.New(),
		Name:       name,
		PaletteID:  paletteID,
		ColorIndex: colorIndex,
		CreatedAt:  s.clock.Now(),
	}
	if err := skill.Validate(); err != nil {
		return domain.Skill{}, err
	}
	if err := s.store.Save(ctx, skill); err != nil {
		return domain.Skill{}, err
	}
	return skill, nil
}

func (s *SkillService) Rename(ctx context.Context, skillID, newName string) (domain.Skill, error) {
	skill, err := s.store.FindByID(ctx, skillID)
	if err != nil {
		return domain.Skill{}, err
	}
	newName = domain.NormalizeName(newName)
	if err := domain.ValidateName(newName); err != nil {
		return domain.Skill{}, err
	}
	if err := s.ensureUnique(ctx, newName, skillID); err != nil {
		return domain.Skill{}, err
	}
	skill.Name = newName
	if err := s.store.Save(ctx, skill); err != nil {
		return domain.Skill{}, err
	}
	return skill, nil
}

func (s *SkillService) SetTarget(ctx context.Context, skillID string, hoursPerWeek float64) (domain.Skill, error) {
	if hoursPerWeek < 0 {
		return domain.Skill{}, fmt.Errorf("weekly target must be non-negative")
	}
	skill, err := s.store.FindByID(ctx, skillID)
	if err != nil {
		return domain.Skill{}, err
	}
	skill.WeeklyTargetHours = hoursPerWeek
	if err := s.store.Save(ctx, skill); err != nil {
		return domain.Skill{}, err
	}
	return skill, nil
}

func (s *SkillService) SetColor(ctx context.Context, skillID, paletteID string, colorIndex int) (domain.Skill, error) {
	if colorIndex < 0 {
		return domain.Skill{}, fmt.Errorf("color index must be non-negative")
	}
	skill, err := s.store.FindByID(ctx, skillID)
	if err != nil {
		return domain.Skill{}, err
	}
	skill.PaletteID = paletteID
	skill.ColorIndex = colorIndex
	if err := s.store.Save(ctx, skill); err != nil {
		return domain.Skill{}, err
	}
	return skill, nil
}

func (s *SkillService) List(ctx context.Context) ([]domain.Skill, error) {
	return s.store.List(ctx)
}

func (s *SkillService) Get(ctx context.Context, skillID string) (domain.Skill, error) {
	return s.store.FindByID(ctx, skillID)
}

func (s *SkillService) Delete(ctx context.Context, skillID string) error {
	if _, err := s.store.FindByID(ctx, skillID); err != nil {
		return err
	}
	return s.store.Delete(ctx, skillID)
}

func (s *SkillService) ensureUnique(ctx context.Context, name, excludeID string) error {
	key := domain.NameKey(name)
	existing, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if domain.NameKey(other.Name) == key {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateName, other.Name)
		}
	}
	return nil
}
