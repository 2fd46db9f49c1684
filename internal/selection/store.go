// Package selection holds the user's curated set of contests for the lifetime
// of a session. The store keeps insertion order, which is also the index space
// for removal; indexes never refer to a filtered view of the data.
package selection

import (
	"errors"
	"sync"

	"ncaa-contests-service/internal/domain/contests"
)

// ErrIndexOutOfRange is returned by RemoveAt for an invalid position. The
// sequence is never modified on a bounds failure.
var ErrIndexOutOfRange = errors.New("selection: index out of range")

// Store is an ordered, duplicate-free-by-value collection of selected
// contests. It is safe for concurrent use; the refresh loop and the HTTP
// surface share it.
type Store struct {
	mu    sync.RWMutex
	items []contests.Contest
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends the contest unless an equal contest is already selected.
// It reports whether the selection changed.
func (s *Store) Add(c contests.Contest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing == c {
			return false
		}
	}
	s.items = append(s.items, c)
	return true
}

// RemoveAt deletes the contest at the given position in the selection's own
// ordering.
func (s *Store) RemoveAt(index int) (contests.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.items) {
		return contests.Contest{}, ErrIndexOutOfRange
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	return removed, nil
}

// Clear empties the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Contests returns a copy of the current selection in insertion order.
func (s *Store) Contests() []contests.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]contests.Contest, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected contests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// ReconcileResult summarizes what a reconciliation pass did.
type ReconcileResult struct {
	Replaced int // selections updated from the fresh set
	Stale    int // selections kept as-is (missing upstream or no stable id)
}

// Reconcile replaces each selected contest with the fresh contest sharing its
// id, picking up score/status updates. A selection whose id is empty or
// missing from fresh is kept unchanged; membership and order never change.
func (s *Store) Reconcile(fresh []contests.Contest) ReconcileResult {
	byID := make(map[string]contests.Contest, len(fresh))
	for _, c := range fresh {
		if c.HasID() {
			byID[c.ID] = c
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result ReconcileResult
	for i, selected := range s.items {
		if !selected.HasID() {
			result.Stale++
			continue
		}
		updated, ok := byID[selected.ID]
		if !ok {
			result.Stale++
			continue
		}
		s.items[i] = updated
		result.Replaced++
	}
	return result
}
