package database

import (
	"fmt"

	"oakridge-academy/app/models"
)

// ExamFilters narrows exam listings.
type ExamFilters struct {
	ClassID   string
	SubjectID string
	TeacherID string
}

// ListExams returns exams matching the filters, newest first.
func ListExams(q Queryer, f ExamFilters) ([]*models.Exam, error) {
	query := `SELECT e.id, e.name, e.description, e.exam_date, e.class_id, e.subject_id,
				e.teacher_id, e.max_marks, e.created_at, e.updated_at,
				c.name, c.section, sub.name
			  FROM exams e
			  JOIN classes c ON c.id = e.class_id
			  JOIN subjects sub ON sub.id = e.subject_id
			  WHERE 1=1`
	var args []interface{}

	if f.ClassID != "" {
		query += fmt.Sprintf(" AND e.class_id = $%d", len(args)+1)
		args = append(args, f.ClassID)
	}
	if f.SubjectID != "" {
		query += fmt.Sprintf(" AND e.subject_id = $%d", len(args)+1)
		args = append(args, f.SubjectID)
	}
	if f.TeacherID != "" {
		query += fmt.Sprintf(" AND e.teacher_id = $%d", len(args)+1)
		args = append(args, f.TeacherID)
	}
	query += " ORDER BY e.exam_date DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var exams []*models.Exam
	for rows.Next() {
		e := &models.Exam{Class: &models.Class{}, Subject: &models.Subject{}}
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.ExamDate, &e.ClassID, &e.SubjectID,
			&e.TeacherID, &e.MaxMarks, &e.CreatedAt, &e.UpdatedAt,
			&e.Class.Name, &e.Class.Section, &e.Subject.Name); err != nil {
			return nil, err
		}
		e.Class.ID, e.Subject.ID = e.ClassID, e.SubjectID
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// GetExamByID loads one exam.
func GetExamByID(q Queryer, id string) (*models.Exam, error) {
	e := &models.Exam{}
	err := q.QueryRow(`SELECT id, name, description, exam_date, class_id, subject_id, teacher_id,
						max_marks, created_at, updated_at
					   FROM exams WHERE id = $1`, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.ExamDate, &e.ClassID, &e.SubjectID, &e.TeacherID,
		&e.MaxMarks, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return e, nil
}

// CreateExam inserts an exam row.
func CreateExam(q Queryer, e *models.Exam) error {
	if e.MaxMarks == 0 {
		e.MaxMarks = 100
	}
	query := `INSERT INTO exams (name, description, exam_date, class_id, subject_id, teacher_id, max_marks)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, e.Name, e.Description, e.ExamDate, e.ClassID, e.SubjectID,
		e.TeacherID, e.MaxMarks).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return Translate(err)
}

// UpdateExam updates an exam.
func UpdateExam(q Queryer, e *models.Exam) error {
	query := `UPDATE exams SET name = $1, description = $2, exam_date = $3, max_marks = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := q.Exec(query, e.Name, e.Description, e.ExamDate, e.MaxMarks, e.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExam removes an exam; its marks cascade.
func DeleteExam(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordMark upserts a student's mark for an exam. One row per
// (exam, student); re-entering marks replaces the previous value.
func RecordMark(q Queryer, m *models.Mark) error {
	query := `INSERT INTO marks (exam_id, student_id, subject_id, class_id, marks_obtained)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT ON CONSTRAINT marks_exam_student_key
			  DO UPDATE SET marks_obtained = EXCLUDED.marks_obtained,
							date_recorded = CURRENT_DATE, updated_at = NOW()
			  RETURNING id, date_recorded, created_at, updated_at`
	err := q.QueryRow(query, m.ExamID, m.StudentID, m.SubjectID, m.ClassID, m.MarksObtained).Scan(
		&m.ID, &m.DateRecorded, &m.CreatedAt, &m.UpdatedAt,
	)
	return Translate(err)
}

// ListMarks returns marks for an exam, or for a student when examID is empty.
func ListMarks(q Queryer, examID, studentID string) ([]*models.MarkWithDetails, error) {
	query := `SELECT m.id, m.exam_id, m.student_id, m.subject_id, m.class_id, m.marks_obtained,
				m.date_recorded, m.created_at, m.updated_at,
				s.first_name || ' ' || s.last_name, e.name, COALESCE(sub.name, ''), e.max_marks
			  FROM marks m
			  JOIN students s ON s.id = m.student_id
			  JOIN exams e ON e.id = m.exam_id
			  LEFT JOIN subjects sub ON sub.id = m.subject_id
			  WHERE 1=1`
	var args []interface{}
	if examID != "" {
		query += fmt.Sprintf(" AND m.exam_id = $%d", len(args)+1)
		args = append(args, examID)
	}
	if studentID != "" {
		query += fmt.Sprintf(" AND m.student_id = $%d", len(args)+1)
		args = append(args, studentID)
	}
	query += " ORDER BY m.date_recorded DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var marks []*models.MarkWithDetails
	for rows.Next() {
		m := &models.MarkWithDetails{}
		if err := rows.Scan(&m.ID, &m.ExamID, &m.StudentID, &m.SubjectID, &m.ClassID,
			&m.MarksObtained, &m.DateRecorded, &m.CreatedAt, &m.UpdatedAt,
			&m.StudentName, &m.ExamName, &m.SubjectName, &m.MaxMarks); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// DeleteMark removes a mark row.
func DeleteMark(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM marks WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
