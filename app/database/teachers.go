package database

import (
	"database/sql"

	"oakridge-academy/app/models"
)

const teacherColumns = `t.id, t.first_name, t.last_name, t.email, t.phone, t.address,
	t.date_of_joining, t.user_id, t.created_at, t.updated_at`

func scanTeacher(row interface{ Scan(...interface{}) error }) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Email, &t.Phone, &t.Address,
		&t.DateOfJoining, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return t, nil
}

// ListTeachers returns all teachers ordered by name.
func ListTeachers(q Queryer) ([]*models.Teacher, error) {
	rows, err := q.Query(`SELECT ` + teacherColumns + ` FROM teachers t ORDER BY t.last_name, t.first_name`)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// GetTeacherByID loads one teacher.
func GetTeacherByID(q Queryer, id string) (*models.Teacher, error) {
	return scanTeacher(q.QueryRow(`SELECT `+teacherColumns+` FROM teachers t WHERE t.id = $1`, id))
}

// GetTeacherByUserID resolves a teacher from their login identity.
func GetTeacherByUserID(q Queryer, userID string) (*models.Teacher, error) {
	return scanTeacher(q.QueryRow(`SELECT `+teacherColumns+` FROM teachers t WHERE t.user_id = $1`, userID))
}

// CreateTeacher inserts a teacher row.
func CreateTeacher(q Queryer, t *models.Teacher) error {
	query := `INSERT INTO teachers (first_name, last_name, email, phone, address, date_of_joining, user_id)
			  VALUES ($1, $2, $3, $4, $5, COALESCE($6, CURRENT_DATE), $7)
			  RETURNING id, date_of_joining, created_at, updated_at`
	var joining interface{}
	if !t.DateOfJoining.IsZero() {
		joining = t.DateOfJoining
	}
	err := q.QueryRow(query, t.FirstName, t.LastName, t.Email, t.Phone, t.Address, joining, t.UserID).Scan(
		&t.ID, &t.DateOfJoining, &t.CreatedAt, &t.UpdatedAt,
	)
	return Translate(err)
}

// UpdateTeacher updates the mutable fields of a teacher.
func UpdateTeacher(q Queryer, t *models.Teacher) error {
	query := `UPDATE teachers SET first_name = $1, last_name = $2, email = $3, phone = $4,
				address = $5, updated_at = NOW()
			  WHERE id = $6`
	res, err := q.Exec(query, t.FirstName, t.LastName, t.Email, t.Phone, t.Address, t.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTeacher removes a teacher and, when linked, the login identity,
// in one transaction. Teaching assignments cascade.
func DeleteTeacher(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID *string
	if err := tx.QueryRow(`SELECT user_id FROM teachers WHERE id = $1`, id).Scan(&userID); err != nil {
		return Translate(err)
	}

	if _, err := tx.Exec(`DELETE FROM teachers WHERE id = $1`, id); err != nil {
		return Translate(err)
	}
	if userID != nil {
		if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, *userID); err != nil {
			return Translate(err)
		}
	}
	return tx.Commit()
}

// AssignTeacher records that a teacher teaches a subject in a class.
func AssignTeacher(q Queryer, a *models.TeacherClassSubject) error {
	query := `INSERT INTO teacher_class_subjects (teacher_id, class_id, subject_id)
			  VALUES ($1, $2, $3) RETURNING id, created_at`
	err := q.QueryRow(query, a.TeacherID, a.ClassID, a.SubjectID).Scan(&a.ID, &a.CreatedAt)
	return Translate(err)
}

// UnassignTeacher removes a teaching assignment.
func UnassignTeacher(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM teacher_class_subjects WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTeacherAssignments returns a teacher's (class, subject) assignments.
func GetTeacherAssignments(q Queryer, teacherID string) ([]*models.TeacherClassSubject, error) {
	query := `SELECT tcs.id, tcs.teacher_id, tcs.class_id, tcs.subject_id, tcs.created_at,
				c.name, c.section, sub.name, sub.code
			  FROM teacher_class_subjects tcs
			  JOIN classes c ON c.id = tcs.class_id
			  JOIN subjects sub ON sub.id = tcs.subject_id
			  WHERE tcs.teacher_id = $1`
	rows, err := q.Query(query, teacherID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var assignments []*models.TeacherClassSubject
	for rows.Next() {
		a := &models.TeacherClassSubject{Class: &models.Class{}, Subject: &models.Subject{}}
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.ClassID, &a.SubjectID, &a.CreatedAt,
			&a.Class.Name, &a.Class.Section, &a.Subject.Name, &a.Subject.Code); err != nil {
			return nil, err
		}
		a.Class.ID = a.ClassID
		a.Subject.ID = a.SubjectID
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// TeacherAssigned reports whether the teacher is assigned to the
// (class, subject) pair. Used by the policy layer to gate attendance and
// mark entry.
func TeacherAssigned(q Queryer, teacherID, classID, subjectID string) (bool, error) {
	var n int
	err := q.QueryRow(`SELECT COUNT(*) FROM teacher_class_subjects
					   WHERE teacher_id = $1 AND class_id = $2 AND subject_id = $3`,
		teacherID, classID, subjectID).Scan(&n)
	if err != nil {
		return false, Translate(err)
	}
	return n > 0, nil
}
