package service

import (
	"time"

	"tenk/internal/modules/stats/domain"
	"tenk/internal/platform/clock"
)

// StatsService runs the pure calculators against a clock and the
// configured first weekday.
type StatsService struct {
	clock     clock.Clock
	weekStart time.Weekday
}

func NewStatsService(clock clock.Clock, weekStart time.Weekday) *StatsService {
	return &StatsService{clock: clock, weekStart: weekStart}
}

func (s *StatsService) Pace(spans []domain.SessionSpan, totalSeconds int64) domain.PaceResult {
	return domain.CalculatePace(spans, hoursRemaining(totalSeconds), s.clock.Now())
}

func (s *StatsService) Target(spans []domain.SessionSpan, totalSeconds int64, targetHoursPerWeek float64) domain.TargetProjection {
	actual := s.Pace(spans, totalSeconds)
	return domain.CalculateTargetProjection(hoursRemaining(totalSeconds), targetHoursPerWeek, actual.HoursPerWeek)
}

func (s *StatsService) Heatmap(spans []domain.SessionSpan, weeks int) domain.Heatmap {
	return domain.BuildHeatmap(spans, weeks, s.clock.Now(), s.weekStart)
}

func hoursRemaining(totalSeconds int64) float64 {
	return domain.GoalHours - float64(totalSeconds)/3600
}
