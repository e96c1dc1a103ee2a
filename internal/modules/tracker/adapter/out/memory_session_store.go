package out

import (
	"context"
	"sort"
	"sync"
	"time"

	"tenk/internal/modules/tracker/domain"
)

// MemorySessionStore backs the session projection when sqlite is
// unavailable. Data lasts for the process lifetime only.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: map[string]domain.Session{}}
}

func (s *MemorySessionStore) Save(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *MemorySessionStore) ListBySkill(_ context.Context, skillID string) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Session{}
	for _, session := range s.sessions {
		if session.SkillID == skillID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (s *MemorySessionStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = map[string]domain.Session{}
	return nil
}

func (s *MemorySessionStore) SkillTotals(_ context.Context, skillID string) (int64, int, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	var count int
	var last time.Time
	for _, session := range s.sessions {
		if session.SkillID != skillID {
			continue
		}
		total += session.DurationSeconds(session.EndedAt)
		count++
		if session.StartedAt.After(last) {
			last = session.StartedAt
		}
	}
	return total, count, last, nil
}

func (s *MemorySessionStore) PurgeSkill(_ context.Context, skillID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if session.SkillID == skillID {
			delete(s.sessions, id)
		}
	}
	return nil
}
