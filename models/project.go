package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    int        `gorm:"not null;default:3" json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	Tasks       []Task     `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (p *Project) FromJSON(data []byte) error {
	return json.Unmarshal(data, p)
}

func (p *Project) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}
