package usecase

import (
	"context"

	"tenk/internal/modules/stats/domain"
	statsdto "tenk/internal/modules/stats/dto"
	statsin "tenk/internal/modules/stats/port/in"
	statsout "tenk/internal/modules/stats/port/out"
	"tenk/internal/modules/stats/service"
)

const DefaultHeatmapWeeks = 12

type Interactor struct {
	svc      *service.StatsService
	skills   statsout.SkillSource
	sessions statsout.SessionSource
}

func NewInteractor(svc *service.StatsService, skills statsout.SkillSource, sessions statsout.SessionSource) statsin.Usecase {
	return &Interactor{svc: svc, skills: skills, sessions: sessions}
}

func (i *Interactor) Pace(ctx context.Context, skillID string) (statsdto.PaceOutput, error) {
	facts, spans, err := i.load(ctx, skillID)
	if err != nil {
		return statsdto.PaceOutput{}, err
	}
	result := i.svc.Pace(spans, facts.TotalSeconds)
	return statsdto.PaceOutput{
		SkillID:           facts.ID,
		SkillName:         facts.Name,
		HoursPerWeek:      result.HoursPerWeek,
		Confidence:        string(result.Confidence),
		Trend:             string(result.Trend),
		UniqueDays:        result.UniqueDays,
		SpanDays:          result.SpanDays,
		AtGoal:            result.Projection.AtGoal,
		Years:             result.Projection.Years,
		Months:            result.Projection.Months,
		ProjectionDisplay: projectionDisplay(result),
	}, nil
}

func (i *Interactor) Target(ctx context.Context, skillID string) (statsdto.TargetOutput, error) {
	facts, spans, err := i.load(ctx, skillID)
	if err != nil {
		return statsdto.TargetOutput{}, err
	}
	out := statsdto.TargetOutput{
		SkillID:   facts.ID,
		SkillName: facts.Name,
	}
	if facts.WeeklyTargetHours <= 0 {
		out.ProjectionDisplay = "no weekly target set"
		return out, nil
	}
	result := i.svc.Target(spans, facts.TotalSeconds, facts.WeeklyTargetHours)
	out.TargetHoursPerWeek = result.TargetHoursPerWeek
	out.GapHoursPerWeek = result.GapHoursPerWeek
	out.ProjectionDisplay = domain.FormatProjection(result.Projection)
	return out, nil
}

func (i *Interactor) Heatmap(ctx context.Context, skillID string, weeks int) (statsdto.HeatmapOutput, error) {
	if weeks <= 0 {
		weeks = DefaultHeatmapWeeks
	}
	facts, spans, err := i.load(ctx, skillID)
	if err != nil {
		return statsdto.HeatmapOutput{}, err
	}
	heatmap := i.svc.Heatmap(spans, weeks)
	out := statsdto.HeatmapOutput{
		SkillID:   facts.ID,
		SkillName: facts.Name,
		Weeks:     make([][]statsdto.HeatmapCell, 0, len(heatmap.Weeks)),
	}
	for _, week := range heatmap.Weeks {
		row := make([]statsdto.HeatmapCell, 7)
		for d, cell := range week {
			row[d] = statsdto.HeatmapCell{Date: cell.Date, Seconds: cell.Seconds, Level: cell.Level}
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context, skillID string) (statsdto.SummaryOutput, error) {
	facts, err := i.skills.SkillFacts(ctx, skillID)
	if err != nil {
		return statsdto.SummaryOutput{}, err
	}
	return statsdto.SummaryOutput{
		SkillID:         facts.ID,
		SkillName:       facts.Name,
		TotalSeconds:    facts.TotalSeconds,
		TotalHours:      float64(facts.TotalSeconds) / 3600,
		Progress:        facts.Progress,
		SessionCount:    facts.SessionCount,
		LastPracticedAt: facts.LastPracticedAt,
	}, nil
}

func (i *Interactor) load(ctx context.Context, skillID string) (statsout.SkillFacts, []domain.SessionSpan, error) {
	facts, err := i.skills.SkillFacts(ctx, skillID)
	if err != nil {
		return statsout.SkillFacts{}, nil, err
	}
	spans, err := i.sessions.SkillSessions(ctx, skillID)
	if err != nil {
		return statsout.SkillFacts{}, nil, err
	}
	return facts, spans, nil
}

func projectionDisplay(result domain.PaceResult) string {
	if result.Confidence == domain.ConfidenceInsufficient {
		return "not enough practice days yet, keep going"
	}
	return domain.FormatProjection(result.Projection)
}
