package services

import (
	"sync"

	"organizely/organizer/views"

	"github.com/google/uuid"
)

// SortPreferenceStore keeps each user's task-list sort state, so the sort
// toggle behaves like a stateful column header across requests rather than a
// one-shot query parameter.
type SortPreferenceStore struct {
	mu    sync.Mutex
	prefs map[uuid.UUID]views.SortState
}

func NewSortPreferenceStore() *SortPreferenceStore {
	return &SortPreferenceStore{prefs: make(map[uuid.UUID]views.SortState)}
}

// Get returns the user's sort state, starting from the default priority
// descending order for users who never toggled anything.
func (s *SortPreferenceStore) Get(userID uuid.UUID) views.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.prefs[userID]
	if !ok {
		return views.NewSortState()
	}
	return state
}

// Toggle flips the direction stored for key, makes it the user's active sort
// key and returns the updated state.
func (s *SortPreferenceStore) Toggle(userID uuid.UUID, key views.SortKey) views.SortState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.prefs[userID]
	if !ok {
		state = views.NewSortState()
	}
	state.Toggle(key)
	s.prefs[userID] = state
	return state
}
