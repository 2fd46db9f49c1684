package store

import (
	"sync"

	"ncaa-contests-service/internal/domain/contests"
)

// MemoryStore keeps a thread-safe snapshot of the last successful fetch in
// memory, preserving provider order for display.
type MemoryStore struct {
	mu    sync.RWMutex
	items []contests.Contest
	byID  map[string]int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

// ListContests returns a copy of the current working set.
func (s *MemoryStore) ListContests() []contests.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]contests.Contest, len(s.items))
	copy(result, s.items)
	return result
}

// GetContest retrieves a contest by id. Contests without a stable id are not
// addressable.
func (s *MemoryStore) GetContest(id string) (contests.Contest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == "" {
		return contests.Contest{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return contests.Contest{}, false
	}
	return s.items[idx], true
}

// SetContests replaces the working set with a new fetch result.
func (s *MemoryStore) SetContests(items []contests.Contest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]contests.Contest, len(items))
	copy(s.items, items)
	s.byID = make(map[string]int, len(items))
	for i, c := range s.items {
		if c.HasID() {
			s.byID[c.ID] = i
		}
	}
}

// Len returns the size of the working set.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
