package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MasteryGoalHours is the fixed per-skill mastery target.
const MasteryGoalHours = 10000

// MaxNameLength bounds display names, counted in runes after trimming.
const MaxNameLength = 30

type Skill struct {
	ID                string
	Name              string
	PaletteID         string
	ColorIndex        int
	WeeklyTargetHours float64
	CreatedAt         time.Time
}

// NormalizeName trims the name the way it will be stored. "  Swift  "
// becomes "Swift"; interior whitespace is preserved.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NameKey is the case- and whitespace-insensitive uniqueness key for a
// name: lowercased with whitespace runs collapsed.
func NameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func ValidateName(name string) error {
	trimmed := NormalizeName(name)
	if trimmed == "" {
		return fmt.Errorf("skill name is required")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return fmt.Errorf("skill name exceeds %d characters", MaxNameLength)
	}
	return nil
}

func (s Skill) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if s.ColorIndex < 0 {
		return fmt.Errorf("color index must be non-negative")
	}
	if s.WeeklyTargetHours < 0 {
		return fmt.Errorf("weekly target must be non-negative")
	}
	return nil
}

// Progress is accumulated hours over the mastery goal, clamped to [0, 1].
func Progress(totalSeconds int64) float64 {
	p := float64(totalSeconds) / 3600 / MasteryGoalHours
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
