package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do item. ProjectID is nil for unassigned tasks; the
// project is referenced by identifier only and never embeds the task back.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	ProjectID   *uuid.UUID `gorm:"type:uuid" json:"project_id,omitempty"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    int        `gorm:"not null;default:3" json:"priority"`
	Label       string     `json:"label"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	Subtasks    []Subtask  `gorm:"foreignKey:TaskID" json:"subtasks,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// HasLocation reports whether the task carries a geo-coordinate. The 0/0
// default means "unset".
func (t *Task) HasLocation() bool {
	return t.Latitude != 0 || t.Longitude != 0
}

func (t *Task) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}

func (t *Task) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}
