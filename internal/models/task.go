package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

const DefaultCategory = "General"

type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Category    string     `json:"category" gorm:"not null;default:'General'"`
	Priority    string     `json:"priority" gorm:"not null;default:'Medium'"`
	Deadline    *time.Time `json:"deadline"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ValidPriority reports whether p is one of the three accepted levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
