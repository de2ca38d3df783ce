package models

import "time"

// User is a login identity. Students, teachers and parents may each be
// linked to one user record; deleting the person deletes the identity.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"-" validate:"required,min=8"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	Roles []*Role `json:"roles,omitempty"`
}

// FullName returns the display name for the user.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user holds the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
