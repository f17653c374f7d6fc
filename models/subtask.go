package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Subtask always belongs to exactly one task.
type Subtask struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null" json:"task_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    int        `gorm:"not null;default:3" json:"priority"`
	Label       string     `json:"label"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (s *Subtask) FromJSON(data []byte) error {
	return json.Unmarshal(data, s)
}

func (s *Subtask) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}
