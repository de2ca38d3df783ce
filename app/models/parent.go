package models

import "time"

// Parent represents a parent or guardian responsible for one or more students.
type Parent struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     *string   `json:"phone,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Children []*Student `json:"children,omitempty"`
}

// FullName returns the display name for the parent.
func (p *Parent) FullName() string {
	return p.FirstName + " " + p.LastName
}
