package memorystore

import (
	"sort"
	"sync"
	"time"
)

// MemorySessionStore tracks the price display sessions currently open.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time // id -> opened at
}

func NewSessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]time.Time),
	}
}

func (s *MemorySessionStore) Add(id string, openedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = openedAt
}

func (s *MemorySessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// GetAll returns the open session ids, oldest first.
func (s *MemorySessionStore) GetAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.sessions[out[i]].Before(s.sessions[out[j]])
	})
	return out
}

// CountAll returns the number of open sessions.
func (s *MemorySessionStore) CountAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
