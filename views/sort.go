package views

import (
	"sort"
	"time"

	"organizely/organizer/models"
)

// SortKey selects the field a task or project list is ordered by.
type SortKey string

const (
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
	SortByDueDate  SortKey = "due_date"
)

// ParseSortKey maps a query-parameter value to a SortKey, defaulting to
// priority.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByTitle:
		return SortByTitle
	case SortByDueDate:
		return SortByDueDate
	default:
		return SortByPriority
	}
}

// SortState tracks the active sort key and a direction per key, mirroring
// the per-column toggle buttons above each task list.
type SortState struct {
	Key               SortKey `json:"key"`
	PriorityAscending bool    `json:"priority_ascending"`
	TitleAscending    bool    `json:"title_ascending"`
	DueDateAscending  bool    `json:"due_date_ascending"`
}

// NewSortState returns the initial state: priority descending, so the most
// urgent tasks lead.
func NewSortState() SortState {
	return SortState{Key: SortByPriority}
}

// Toggle flips the direction stored for key and makes it the active sort
// key. Toggling a key that is not currently active therefore both changes
// that key's direction and switches the sort to it.
func (s *SortState) Toggle(key SortKey) {
	switch key {
	case SortByTitle:
		s.TitleAscending = !s.TitleAscending
	case SortByDueDate:
		s.DueDateAscending = !s.DueDateAscending
	default:
		key = SortByPriority
		s.PriorityAscending = !s.PriorityAscending
	}
	s.Key = key
}

// Ascending reports the direction currently stored for key.
func (s *SortState) Ascending(key SortKey) bool {
	switch key {
	case SortByTitle:
		return s.TitleAscending
	case SortByDueDate:
		return s.DueDateAscending
	default:
		return s.PriorityAscending
	}
}

// SortTasks returns a copy of tasks ordered by key in the given direction.
// The sort is stable: equal-key tasks keep their relative input order, so
// repeated renders over overlapping snapshots do not jitter. Priority ties
// break by label name ascending before falling back to input order. Titles
// compare case-sensitively with an absent title reading as "". A task
// without a due date compares as if due at now; that position shifts between
// calls made at different instants, which matches the observed behavior but
// makes due-date order non-reproducible across renders.
func SortTasks(tasks []models.Task, key SortKey, ascending bool, now time.Time) []models.Task {
	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortByTitle:
			if a.Title == b.Title {
				return false
			}
			if ascending {
				return a.Title < b.Title
			}
			return a.Title > b.Title
		case SortByDueDate:
			da, db := dueOrNow(a, now), dueOrNow(b, now)
			if da.Equal(db) {
				return false
			}
			if ascending {
				return da.Before(db)
			}
			return da.After(db)
		default:
			if a.Priority == b.Priority {
				// Secondary key is always label name ascending,
				// regardless of the primary direction.
				return a.Label < b.Label
			}
			if ascending {
				return a.Priority < b.Priority
			}
			return a.Priority > b.Priority
		}
	})

	return sorted
}

// SortProjects returns a copy of projects ordered by key in the given
// direction. Projects carry no label, so priority ties fall back to input
// order directly.
func SortProjects(projects []models.Project, key SortKey, ascending bool, now time.Time) []models.Project {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch key {
		case SortByTitle:
			if a.Title == b.Title {
				return false
			}
			if ascending {
				return a.Title < b.Title
			}
			return a.Title > b.Title
		case SortByDueDate:
			da, db := projectDueOrNow(a, now), projectDueOrNow(b, now)
			if da.Equal(db) {
				return false
			}
			if ascending {
				return da.Before(db)
			}
			return da.After(db)
		default:
			if a.Priority == b.Priority {
				return false
			}
			if ascending {
				return a.Priority < b.Priority
			}
			return a.Priority > b.Priority
		}
	})

	return sorted
}

func dueOrNow(t models.Task, now time.Time) time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return now
}

func projectDueOrNow(p models.Project, now time.Time) time.Time {
	if p.DueDate != nil {
		return *p.DueDate
	}
	return now
}
