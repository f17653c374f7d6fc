package views

import (
	"testing"
	"time"

	"organizely/organizer/models"

	"github.com/stretchr/testify/assert"
)

func TestCollectStatsBuckets(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	// Project "Renovate kitchen": A overdue, B open, C completed.
	tasks := []models.Task{
		{Title: "A", IsCompleted: false, DueDate: &yesterday},
		{Title: "B", IsCompleted: false, DueDate: &tomorrow},
		{Title: "C", IsCompleted: true, DueDate: &yesterday},
	}

	stats := CollectStats(tasks, now)

	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Completed)
}

func TestCollectStatsPartitionsSnapshot(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	exact := now
	future := now.Add(time.Minute)

	tasks := []models.Task{
		{Title: "overdue", DueDate: &past},
		{Title: "due exactly now", DueDate: &exact},
		{Title: "due later", DueDate: &future},
		{Title: "undated"},
		{Title: "done early", IsCompleted: true, DueDate: &future},
		{Title: "done late", IsCompleted: true, DueDate: &past},
		{Title: "done undated", IsCompleted: true},
	}

	stats := CollectStats(tasks, now)

	// Every task lands in exactly one bucket.
	assert.Equal(t, len(tasks), stats.Total())
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, 3, stats.Open)
	assert.Equal(t, 3, stats.Completed)
}

func TestCollectStatsUndatedIsOpen(t *testing.T) {
	stats := CollectStats([]models.Task{{Title: "someday"}}, time.Now())
	assert.Equal(t, ProjectStats{Open: 1}, stats)
}

func TestCollectStatsEmpty(t *testing.T) {
	stats := CollectStats(nil, time.Now())
	assert.Equal(t, ProjectStats{}, stats)
	assert.Equal(t, 0, stats.Total())
}
