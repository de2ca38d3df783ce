package models

import "time"

// Role represents a user role (admin, teacher, student, parent).
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users []*User `json:"users,omitempty"`
}
