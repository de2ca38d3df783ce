package models

import "time"

// Exam represents a scheduled exam for a subject within a class.
type Exam struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	ExamDate    time.Time `json:"exam_date"`
	ClassID     string    `json:"class_id" validate:"required,uuid"`
	SubjectID   string    `json:"subject_id" validate:"required,uuid"`
	TeacherID   string    `json:"teacher_id" validate:"required,uuid"`
	MaxMarks    int       `json:"max_marks" validate:"gt=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Class   *Class   `json:"class,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

// Mark records a student's marks for an exam. One mark row per (exam, student).
type Mark struct {
	ID            string    `json:"id"`
	ExamID        string    `json:"exam_id" validate:"required,uuid"`
	StudentID     string    `json:"student_id" validate:"required,uuid"`
	SubjectID     *string   `json:"subject_id,omitempty"`
	ClassID       *string   `json:"class_id,omitempty"`
	MarksObtained int       `json:"marks_obtained" validate:"gte=0"`
	DateRecorded  time.Time `json:"date_recorded"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Exam    *Exam    `json:"exam,omitempty"`
	Student *Student `json:"student,omitempty"`
}
