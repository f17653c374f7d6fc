// Package views implements the derived task views the tabs are built from:
// window and completion filters, sort policies with per-key direction state,
// and per-project aggregate counts. Everything operates on an in-memory
// snapshot and preserves the input order of whatever it does not reorder.
package views

import (
	"time"

	"organizely/organizer/models"

	"github.com/google/uuid"
)

// FilterByCompletion returns the tasks whose completion state matches
// completed exactly.
func FilterByCompletion(tasks []models.Task, completed bool) []models.Task {
	var matched []models.Task
	for _, task := range tasks {
		if task.IsCompleted == completed {
			matched = append(matched, task)
		}
	}
	return matched
}

// FilterByDueWindow returns the tasks whose due date falls in the half-open
// window [start, end). A task without a due date never matches any window.
func FilterByDueWindow(tasks []models.Task, start, end time.Time) []models.Task {
	var matched []models.Task
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		if !task.DueDate.Before(start) && task.DueDate.Before(end) {
			matched = append(matched, task)
		}
	}
	return matched
}

// FilterOverdue returns the incomplete tasks whose due date has passed as of
// asOf. A completed task is never overdue, and neither is a task without a
// due date.
func FilterOverdue(tasks []models.Task, asOf time.Time) []models.Task {
	var matched []models.Task
	for _, task := range tasks {
		if task.IsCompleted || task.DueDate == nil {
			continue
		}
		if task.DueDate.Before(asOf) {
			matched = append(matched, task)
		}
	}
	return matched
}

// FilterByProject returns the tasks owned by the given project.
func FilterByProject(tasks []models.Task, projectID uuid.UUID) []models.Task {
	var matched []models.Task
	for _, task := range tasks {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			matched = append(matched, task)
		}
	}
	return matched
}

// FilterUnassigned returns the tasks that belong to no project. Unassigned
// is a distinct selector, not a special project identity.
func FilterUnassigned(tasks []models.Task) []models.Task {
	var matched []models.Task
	for _, task := range tasks {
		if task.ProjectID == nil {
			matched = append(matched, task)
		}
	}
	return matched
}

// TodayWindow returns the half-open window [midnight, next midnight) of t's
// calendar day in t's location.
func TodayWindow(t time.Time) (start, end time.Time) {
	year, month, day := t.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
