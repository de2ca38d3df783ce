package models

import "time"

// Subject represents a taught subject, e.g. "Mathematics" (MATH101).
type Subject struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Code        string    `json:"code" validate:"required"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
