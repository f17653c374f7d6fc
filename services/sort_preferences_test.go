package services

import (
	"testing"

	"organizely/organizer/views"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSortPreferenceStore_DefaultState(t *testing.T) {
	store := NewSortPreferenceStore()

	state := store.Get(uuid.New())
	assert.Equal(t, views.SortByPriority, state.Key)
	assert.False(t, state.Ascending(views.SortByPriority))
}

func TestSortPreferenceStore_ToggleActivatesAndFlips(t *testing.T) {
	store := NewSortPreferenceStore()
	userID := uuid.New()

	state := store.Toggle(userID, views.SortByTitle)
	assert.Equal(t, views.SortByTitle, state.Key)
	assert.True(t, state.TitleAscending)

	state = store.Toggle(userID, views.SortByTitle)
	assert.Equal(t, views.SortByTitle, state.Key)
	assert.False(t, state.TitleAscending)

	// The stored state survives across Get calls.
	assert.Equal(t, state, store.Get(userID))
}

func TestSortPreferenceStore_PerUserIsolation(t *testing.T) {
	store := NewSortPreferenceStore()
	first := uuid.New()
	second := uuid.New()

	store.Toggle(first, views.SortByDueDate)

	state := store.Get(second)
	assert.Equal(t, views.SortByPriority, state.Key)
	assert.False(t, state.DueDateAscending)
}
