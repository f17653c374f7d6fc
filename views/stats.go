package views

import (
	"time"

	"organizely/organizer/models"
)

// ProjectStats holds the three disjoint task buckets shown on a project row.
// Computed over a single snapshot, the buckets always partition it:
// Overdue + Open + Completed == len(snapshot).
type ProjectStats struct {
	Overdue   int `json:"overdue"`
	Open      int `json:"open"`
	Completed int `json:"completed"`
}

// Total is the size of the snapshot the stats were computed from.
func (s ProjectStats) Total() int {
	return s.Overdue + s.Open + s.Completed
}

// CollectStats buckets one snapshot of tasks as of the given instant.
// Completed tasks count as completed no matter their due date; incomplete
// tasks are overdue when their due date has passed and open otherwise,
// including when they have no due date at all.
func CollectStats(tasks []models.Task, asOf time.Time) ProjectStats {
	var stats ProjectStats
	for _, task := range tasks {
		switch {
		case task.IsCompleted:
			stats.Completed++
		case task.DueDate != nil && task.DueDate.Before(asOf):
			stats.Overdue++
		default:
			stats.Open++
		}
	}
	return stats
}
