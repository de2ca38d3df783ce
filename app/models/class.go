package models

import "time"

// Class represents a class/grade grouping, e.g. "Grade 10 - A".
type Class struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Section     *string   `json:"section,omitempty"`
	YearLevel   *int      `json:"year_level,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NameWithSection returns the display name including the section, if any.
func (c *Class) NameWithSection() string {
	if c.Section == nil || *c.Section == "" {
		return c.Name
	}
	return c.Name + " - " + *c.Section
}
