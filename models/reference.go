package models

// Priority is one of the five fixed urgency levels. Level 5 is the most
// urgent.
type Priority struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Level int    `json:"level"`
}

// Label is one of the five fixed task categories.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

const (
	// DefaultPriorityLevel is applied whenever a task or project is saved
	// without an explicit priority.
	DefaultPriorityLevel = 3

	// FallbackPriorityName is displayed for priority levels that are not in
	// the reference set. The stored level is left untouched.
	FallbackPriorityName = "Medium"

	// FallbackLabelName is displayed for labels that are not in the
	// reference set. The stored label is left untouched.
	FallbackLabelName = "Misc"

	// FallbackColor is used when a priority level or label has no entry in
	// the reference set.
	FallbackColor = "black"
)

// ReferenceSet holds the immutable priority and label tables. It is built
// once at startup and handed to the components that need it, so tests can
// substitute alternate sets.
type ReferenceSet struct {
	Priorities []Priority `json:"priorities"`
	Labels     []Label    `json:"labels"`
}

// DefaultReferenceSet returns the built-in priority and label tables.
func DefaultReferenceSet() ReferenceSet {
	return ReferenceSet{
		Priorities: []Priority{
			{Name: "Critical", Color: "red", Level: 5},
			{Name: "High", Color: "yellow", Level: 4},
			{Name: "Medium", Color: "orange", Level: 3},
			{Name: "Low", Color: "green", Level: 2},
			{Name: "Trivial", Color: "blue", Level: 1},
		},
		Labels: []Label{
			{Name: "School", Color: "red"},
			{Name: "Work", Color: "yellow"},
			{Name: "Home", Color: "orange"},
			{Name: "Kids", Color: "green"},
			{Name: "Pets", Color: "blue"},
		},
	}
}

// PriorityName resolves a stored level to its display name.
func (r ReferenceSet) PriorityName(level int) string {
	for _, p := range r.Priorities {
		if p.Level == level {
			return p.Name
		}
	}
	return FallbackPriorityName
}

// PriorityColor resolves a stored level to its color token.
func (r ReferenceSet) PriorityColor(level int) string {
	for _, p := range r.Priorities {
		if p.Level == level {
			return p.Color
		}
	}
	return FallbackColor
}

// LabelName resolves a stored label to its display name.
func (r ReferenceSet) LabelName(name string) string {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Name
		}
	}
	return FallbackLabelName
}

// LabelColor resolves a stored label to its color token.
func (r ReferenceSet) LabelColor(name string) string {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Color
		}
	}
	return FallbackColor
}

// ValidPriorityLevel reports whether level is one of the defined levels.
func (r ReferenceSet) ValidPriorityLevel(level int) bool {
	for _, p := range r.Priorities {
		if p.Level == level {
			return true
		}
	}
	return false
}
