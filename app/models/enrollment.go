package models

import "time"

// Enrollment enrolls a student into a subject within a class.
// One enrollment per (student, class, subject).
type Enrollment struct {
	ID             string           `json:"id"`
	StudentID      string           `json:"student_id" validate:"required,uuid"`
	ClassID        string           `json:"class_id" validate:"required,uuid"`
	SubjectID      string           `json:"subject_id" validate:"required,uuid"`
	EnrollmentDate time.Time        `json:"enrollment_date"`
	Status         EnrollmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
