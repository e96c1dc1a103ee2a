package domain

import (
	"fmt"
	"time"
)

const (
	// GoalHours is the mastery goal every skill accumulates toward.
	GoalHours = 10000.0

	// LookbackWeeks bounds the pace window ending at now.
	LookbackWeeks = 8

	// Alpha is the EMA smoothing factor over weekly buckets.
	Alpha = 0.25

	// TrendThreshold is the relative change that separates steady from
	// increasing or decreasing.
	TrendThreshold = 0.15

	// RecentTrendWeeks is the size of the recent trend window.
	RecentTrendWeeks = 2

	// CapYears is the projection display ceiling. A near-zero pace yields
	// a capped message instead of a precise absurd number.
	CapYears = 100
)

// Confidence gates, in unique practice days. Many short sessions on one
// day must not inflate confidence, so days are counted, not sessions.
const (
	minDaysLow    = 3
	minDaysMedium = 7
	minDaysHigh   = 15

	minSpanDaysMedium = 14
	minSpanDaysHigh   = 28
)

type Confidence string

const (
	ConfidenceInsufficient Confidence = "insufficient"
	ConfidenceLow          Confidence = "low"
	ConfidenceMedium       Confidence = "medium"
	ConfidenceHigh         Confidence = "high"
)

type Trend string

const (
	TrendUnknown    Trend = "unknown"
	TrendIncreasing Trend = "increasing"
	TrendSteady     Trend = "steady"
	TrendDecreasing Trend = "decreasing"
)

// SessionSpan is the slice of a session the calculators need.
type SessionSpan struct {
	StartedAt     time.Time
	EndedAt       time.Time
	PausedSeconds int64
}

// EffectiveSeconds is end minus start minus paused, floored at zero.
func (s SessionSpan) EffectiveSeconds() int64 {
	seconds := int64(s.EndedAt.Sub(s.StartedAt)/time.Second) - s.PausedSeconds
	if seconds < 0 {
		return 0
	}
	return seconds
}

// Hours is the effective practice duration in fractional hours.
func (s SessionSpan) Hours() float64 {
	return float64(s.EffectiveSeconds()) / 3600
}

// Projection is the estimated time remaining to the goal.
type Projection struct {
	AtGoal      bool
	Capped      bool
	WeeksToGoal float64
	Years       int
	Months      int
	// Low-confidence projections carry a year range instead of a precise
	// figure.
	HasRange   bool
	LowerYears int
	UpperYears int
}

// PaceResult is the full pace estimate. It is always well-formed: edge
// cases resolve to sentinel values, never errors.
type PaceResult struct {
	HoursPerWeek float64
	Confidence   Confidence
	Trend        Trend
	UniqueDays   int
	SpanDays     int
	Projection   Projection
}

// CalculatePace estimates hours-per-week over the lookback window via an
// EMA across calendar-week buckets. Zero weeks participate in the
// recurrence so inactivity pulls the estimate down rather than being
// masked.
func CalculatePace(sessions []SessionSpan, hoursRemaining float64, now time.Time) PaceResult {
	windowStart := now.Add(-LookbackWeeks * 7 * 24 * time.Hour)

	var buckets [LookbackWeeks]float64
	var counts [LookbackWeeks]int
	days := map[string]time.Time{}
	for _, session := range sessions {
		if session.StartedAt.After(now) || !session.EndedAt.After(windowStart) {
			continue
		}
		idx := int(session.StartedAt.Sub(windowStart) / (7 * 24 * time.Hour))
		if idx < 0 {
			idx = 0
		}
		if idx >= LookbackWeeks {
			idx = LookbackWeeks - 1
		}
		buckets[idx] += session.Hours()
		counts[idx]++
		markDay(days, session.StartedAt, windowStart, now)
		markDay(days, session.EndedAt, windowStart, now)
	}

	ema := buckets[0]
	for i := 1; i < LookbackWeeks; i++ {
		ema = Alpha*buckets[i] + (1-Alpha)*ema
	}

	uniqueDays, spanDays := dayStats(days)
	result := PaceResult{
		HoursPerWeek: ema,
		Confidence:   confidence(uniqueDays, spanDays),
		Trend:        trend(buckets, counts),
		UniqueDays:   uniqueDays,
		SpanDays:     spanDays,
	}
	if result.Confidence == ConfidenceInsufficient {
		return result
	}
	result.Projection = project(hoursRemaining, ema, result.Confidence)
	return result
}

// TargetProjection divides the remaining hours by a user-chosen weekly
// target. The figure is definitional rather than inferred, so confidence
// is high and the interesting signal is the gap against actual pace.
type TargetProjection struct {
	TargetHoursPerWeek float64
	Projection         Projection
	// GapHoursPerWeek is actual recent pace minus target. Positive means
	// ahead of target.
	GapHoursPerWeek float64
}

func CalculateTargetProjection(hoursRemaining, targetHoursPerWeek, actualPace float64) TargetProjection {
	return TargetProjection{
		TargetHoursPerWeek: targetHoursPerWeek,
		Projection:         project(hoursRemaining, targetHoursPerWeek, ConfidenceHigh),
		GapHoursPerWeek:    actualPace - targetHoursPerWeek,
	}
}

func markDay(days map[string]time.Time, at, windowStart, now time.Time) {
	if at.Before(windowStart) || at.After(now) {
		return
	}
	day := at.UTC().Truncate(24 * time.Hour)
	days[day.Format("2006-01-02")] = day
}

func dayStats(days map[string]time.Time) (unique, spanDays int) {
	if len(days) == 0 {
		return 0, 0
	}
	var first, last time.Time
	for _, day := range days {
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	return len(days), int(last.Sub(first)/(24*time.Hour)) + 1
}

func confidence(uniqueDays, spanDays int) Confidence {
	switch {
	case uniqueDays < minDaysLow:
		return ConfidenceInsufficient
	case uniqueDays >= minDaysHigh && spanDays >= minSpanDaysHigh:
		return ConfidenceHigh
	case uniqueDays >= minDaysMedium && spanDays >= minSpanDaysMedium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func trend(buckets [LookbackWeeks]float64, counts [LookbackWeeks]int) Trend {
	split := LookbackWeeks - RecentTrendWeeks
	var recentHours, historicalHours float64
	var recentCount, historicalCount int
	for i, hours := range buckets {
		if i < split {
			historicalHours += hours
			historicalCount += counts[i]
		} else {
			recentHours += hours
			recentCount += counts[i]
		}
	}
	if recentCount == 0 || historicalCount == 0 {
		return TrendUnknown
	}
	recent := recentHours / RecentTrendWeeks
	historical := historicalHours / float64(split)
	if historical == 0 {
		return TrendUnknown
	}
	change := (recent - historical) / historical
	switch {
	case change > TrendThreshold:
		return TrendIncreasing
	case change < -TrendThreshold:
		return TrendDecreasing
	default:
		return TrendSteady
	}
}

func project(hoursRemaining, pace float64, conf Confidence) Projection {
	if hoursRemaining <= 0 {
		return Projection{AtGoal: true}
	}
	if pace <= 0 {
		return Projection{Capped: true}
	}
	weeks := hoursRemaining / pace
	p := Projection{WeeksToGoal: weeks}
	totalMonths := int(weeks * 12 / 52)
	p.Years = totalMonths / 12
	p.Months = totalMonths % 12
	if p.Years >= CapYears {
		return Projection{WeeksToGoal: weeks, Capped: true}
	}
	if conf == ConfidenceLow {
		p.HasRange = true
		p.LowerYears = yearsAtPace(hoursRemaining, pace*(1+Alpha))
		p.UpperYears = yearsAtPace(hoursRemaining, pace*(1-Alpha))
		if p.UpperYears > CapYears {
			p.UpperYears = CapYears
		}
	}
	return p
}

func yearsAtPace(hoursRemaining, pace float64) int {
	if pace <= 0 {
		return CapYears
	}
	return int(hoursRemaining / pace / 52)
}

// FormatProjection renders a projection for display. Past the ceiling the
// message stays human instead of quoting a meaningless figure.
func FormatProjection(p Projection) string {
	switch {
	case p.AtGoal:
		return "goal reached"
	case p.Capped:
		return fmt.Sprintf("over %d years at this pace", CapYears)
	case p.HasRange:
		return fmt.Sprintf("%d-%d years at this pace", p.LowerYears, p.UpperYears)
	case p.Years == 0 && p.Months == 0:
		return "less than a month to go"
	case p.Years == 0:
		return fmt.Sprintf("%d months to go", p.Months)
	case p.Months == 0:
		return fmt.Sprintf("%d years to go", p.Years)
	default:
		return fmt.Sprintf("%d years %d months to go", p.Years, p.Months)
	}
}
