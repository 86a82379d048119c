package model

import "time"

// User roles. The distinction is binary; there is no wider permission
// hierarchy, and the ownership guard does not special-case admins.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account. Name and email are each unique
// across all users; the plaintext password is never stored.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"uniqueIndex;size:25;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:40;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
