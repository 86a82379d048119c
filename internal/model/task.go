package model

import "time"

// Task status values, stored as the two-valued indicator the source data
// model uses: 1 = open, 0 = closed.
const (
	StatusClosed = 0
	StatusOpen   = 1
)

// Task represents a to-do item. OwnerID is set at creation and never
// reassigned; only the owner may complete or delete the task.
type Task struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	DueDate    time.Time `json:"due_date" gorm:"not null;index"`
	Priority   int       `json:"priority" gorm:"not null"`
	PostedDate time.Time `json:"posted_date" gorm:"not null"`
	Status     int       `json:"status" gorm:"not null;default:1;index"`
	OwnerID    uint      `json:"owner_id" gorm:"not null;index"`
}
