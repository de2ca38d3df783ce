package database

import (
	"fmt"

	"oakridge-academy/app/models"
)

// EnrollmentFilters narrows enrollment listings.
type EnrollmentFilters struct {
	StudentID string
	ClassID   string
	SubjectID string
	Status    string
}

// ListEnrollments returns enrollments matching the filters with student,
// class and subject names joined in.
func ListEnrollments(q Queryer, f EnrollmentFilters) ([]*models.Enrollment, error) {
	query := `SELECT e.id, e.student_id, e.class_id, e.subject_id, e.enrollment_date, e.status,
				e.created_at, e.updated_at,
				s.first_name, s.last_name, c.name, c.section, sub.name, sub.code
			  FROM enrollments e
			  JOIN students s ON s.id = e.student_id
			  JOIN classes c ON c.id = e.class_id
			  JOIN subjects sub ON sub.id = e.subject_id
			  WHERE 1=1`
	var args []interface{}

	if f.StudentID != "" {
		query += fmt.Sprintf(" AND e.student_id = $%d", len(args)+1)
		args = append(args, f.StudentID)
	}
	if f.ClassID != "" {
		query += fmt.Sprintf(" AND e.class_id = $%d", len(args)+1)
		args = append(args, f.ClassID)
	}
	if f.SubjectID != "" {
		query += fmt.Sprintf(" AND e.subject_id = $%d", len(args)+1)
		args = append(args, f.SubjectID)
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND e.status = $%d", len(args)+1)
		args = append(args, f.Status)
	}
	query += " ORDER BY e.enrollment_date DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		e := &models.Enrollment{
			Student: &models.Student{},
			Class:   &models.Class{},
			Subject: &models.Subject{},
		}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ClassID, &e.SubjectID, &e.EnrollmentDate,
			&e.Status, &e.CreatedAt, &e.UpdatedAt,
			&e.Student.FirstName, &e.Student.LastName,
			&e.Class.Name, &e.Class.Section,
			&e.Subject.Name, &e.Subject.Code); err != nil {
			return nil, err
		}
		e.Student.ID, e.Class.ID, e.Subject.ID = e.StudentID, e.ClassID, e.SubjectID
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// GetEnrollmentByID loads one enrollment.
func GetEnrollmentByID(q Queryer, id string) (*models.Enrollment, error) {
	e := &models.Enrollment{}
	err := q.QueryRow(`SELECT id, student_id, class_id, subject_id, enrollment_date, status, created_at, updated_at
					   FROM enrollments WHERE id = $1`, id).Scan(
		&e.ID, &e.StudentID, &e.ClassID, &e.SubjectID, &e.EnrollmentDate, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return e, nil
}

// CreateEnrollment inserts an enrollment. One per (student, class, subject).
func CreateEnrollment(q Queryer, e *models.Enrollment) error {
	if e.Status == "" {
		e.Status = models.EnrollmentActive
	}
	query := `INSERT INTO enrollments (student_id, class_id, subject_id, enrollment_date, status)
			  VALUES ($1, $2, $3, COALESCE($4, CURRENT_DATE), $5)
			  RETURNING id, enrollment_date, created_at, updated_at`
	var date interface{}
	if !e.EnrollmentDate.IsZero() {
		date = e.EnrollmentDate
	}
	err := q.QueryRow(query, e.StudentID, e.ClassID, e.SubjectID, date, e.Status).Scan(
		&e.ID, &e.EnrollmentDate, &e.CreatedAt, &e.UpdatedAt,
	)
	return Translate(err)
}

// UpdateEnrollmentStatus moves an enrollment between active/completed/withdrawn.
func UpdateEnrollmentStatus(q Queryer, id string, status models.EnrollmentStatus) error {
	res, err := q.Exec(`UPDATE enrollments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEnrollment removes an enrollment.
func DeleteEnrollment(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
