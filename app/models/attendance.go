package models

import "time"

// Attendance records a student's presence for a subject on a given date.
type Attendance struct {
	ID             string           `json:"id"`
	StudentID      string           `json:"student_id" validate:"required,uuid"`
	ClassID        string           `json:"class_id" validate:"required,uuid"`
	SubjectID      string           `json:"subject_id" validate:"required,uuid"`
	AttendanceDate time.Time        `json:"attendance_date"`
	Status         AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}
