package models

import "time"

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name" validate:"required"`
	LastName      string    `json:"last_name" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	Phone         *string   `json:"phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
	DateOfJoining time.Time `json:"date_of_joining"`
	UserID        *string   `json:"user_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Assignments []*TeacherClassSubject `json:"assignments,omitempty"`
}

// FullName returns the display name for the teacher.
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}

// TeacherClassSubject assigns a teacher to teach a subject in a class.
type TeacherClassSubject struct {
	ID        string    `json:"id"`
	TeacherID string    `json:"teacher_id" validate:"required,uuid"`
	ClassID   string    `json:"class_id" validate:"required,uuid"`
	SubjectID string    `json:"subject_id" validate:"required,uuid"`
	CreatedAt time.Time `json:"created_at"`

	Teacher *Teacher `json:"teacher,omitempty"`
	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
