package out

import (
	"context"
	"sort"
	"strings"
	"sync"

	"tenk/internal/modules/skill/domain"
	skillout "tenk/internal/modules/skill/port/out"
	apperrors "tenk/internal/platform/errors"
)

// MemorySkillStore is the degraded-mode registry used when the sqlite store
// cannot be opened. Nothing survives process exit.
type MemorySkillStore struct {
	mu     sync.RWMutex
	skills map[string]domain.Skill
}

func NewMemorySkillStore() skillout.SkillStore {
	return &MemorySkillStore{skills: map[string]domain.Skill{}}
}

func (s *MemorySkillStore) Save(_ context.Context, skill domain.Skill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills[skill.ID] = skill
	return nil
}

func (s *MemorySkillStore) FindByID(_ context.Context, id string) (domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skill, ok := s.skills[id]
	if !ok {
		return domain.Skill{}, apperrors.ErrSkillNotFound
	}
	return skill, nil
}

func (s *MemorySkillStore) List(_ context.Context) ([]domain.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Skill, 0, len(s.skills))
	for _, skill := range s.skills {
		out = append(out, skill)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *MemorySkillStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.skills, id)
	return nil
}
