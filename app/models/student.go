package models

import "time"

// Student represents an enrolled student.
type Student struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"first_name" validate:"required"`
	LastName      string     `json:"last_name" validate:"required"`
	Email         string     `json:"email" validate:"required,email"`
	Phone         *string    `json:"phone,omitempty"`
	Address       *string    `json:"address,omitempty"`
	Gender        *Gender    `json:"gender,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	AdmissionDate time.Time  `json:"admission_date"`
	ClassID       *string    `json:"class_id,omitempty"`
	UserID        *string    `json:"user_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Class   *Class    `json:"class,omitempty"`
	Parents []*Parent `json:"parents,omitempty"`
}

// FullName returns the display name for the student.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentParent links a student to a parent/guardian. The association is
// an explicit entity so inserts and deletes can run referential checks.
type StudentParent struct {
	ID           string           `json:"id"`
	StudentID    string           `json:"student_id" validate:"required,uuid"`
	ParentID     string           `json:"parent_id" validate:"required,uuid"`
	Relationship RelationshipType `json:"relationship"`
	CreatedAt    time.Time        `json:"created_at"`
}
