package out

import (
	"context"

	skillin "tenk/internal/modules/skill/port/in"
	statsout "tenk/internal/modules/stats/port/out"
)

type SkillSourceAdapter struct {
	skills skillin.Usecase
}

func NewSkillSourceAdapter(skills skillin.Usecase) statsout.SkillSource {
	return &SkillSourceAdapter{skills: skills}
}

func (a *SkillSourceAdapter) SkillFacts(ctx context.Context, skillID string) (statsout.SkillFacts, error) {
	detail, err := a.skills.Get(ctx, skillID)
	if err != nil {
		return statsout.SkillFacts{}, err
	}
	return statsout.SkillFacts{
		ID:                detail.ID,
		Name:              detail.Name,
		TotalSeconds:      detail.TotalSeconds,
		SessionCount:      detail.SessionCount,
		LastPracticedAt:   detail.LastPracticedAt,
		WeeklyTargetHours: detail.WeeklyTargetHours,
		Progress:          detail.Progress,
	}, nil
}
