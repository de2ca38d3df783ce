package database

import (
	"database/sql"
	"fmt"
	"strings"

	"oakridge-academy/app/models"
)

// StudentFilters narrows student listings.
type StudentFilters struct {
	Search  string
	ClassID string
	Gender  string
	Limit   int
	Offset  int
}

const studentColumns = `s.id, s.first_name, s.last_name, s.email, s.phone, s.address,
	s.gender, s.date_of_birth, s.admission_date, s.class_id, s.user_id, s.created_at, s.updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address,
		&s.Gender, &s.DateOfBirth, &s.AdmissionDate, &s.ClassID, &s.UserID,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return s, nil
}

// ListStudents returns students matching the filters, newest first.
func ListStudents(q Queryer, f StudentFilters) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE 1=1`
	var args []interface{}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query += fmt.Sprintf(` AND (LOWER(s.first_name) LIKE $%d OR LOWER(s.last_name) LIKE $%d
			OR LOWER(s.email) LIKE $%d OR LOWER(s.first_name || ' ' || s.last_name) LIKE $%d)`,
			len(args)+1, len(args)+2, len(args)+3, len(args)+4)
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if f.ClassID != "" {
		query += fmt.Sprintf(" AND s.class_id = $%d", len(args)+1)
		args = append(args, f.ClassID)
	}
	if f.Gender != "" {
		query += fmt.Sprintf(" AND s.gender = $%d", len(args)+1)
		args = append(args, f.Gender)
	}

	query += " ORDER BY s.created_at DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// GetStudentByID loads one student.
func GetStudentByID(q Queryer, id string) (*models.Student, error) {
	return scanStudent(q.QueryRow(`SELECT `+studentColumns+` FROM students s WHERE s.id = $1`, id))
}

// GetStudentByUserID resolves a student from their login identity.
func GetStudentByUserID(q Queryer, userID string) (*models.Student, error) {
	return scanStudent(q.QueryRow(`SELECT `+studentColumns+` FROM students s WHERE s.user_id = $1`, userID))
}

// CreateStudent inserts a student row.
func CreateStudent(q Queryer, s *models.Student) error {
	query := `INSERT INTO students (first_name, last_name, email, phone, address, gender,
				date_of_birth, admission_date, class_id, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, CURRENT_DATE), $9, $10)
			  RETURNING id, admission_date, created_at, updated_at`
	var admission interface{}
	if !s.AdmissionDate.IsZero() {
		admission = s.AdmissionDate
	}
	err := q.QueryRow(query, s.FirstName, s.LastName, s.Email, s.Phone, s.Address,
		s.Gender, s.DateOfBirth, admission, s.ClassID, s.UserID).Scan(
		&s.ID, &s.AdmissionDate, &s.CreatedAt, &s.UpdatedAt,
	)
	return Translate(err)
}

// UpdateStudent updates the mutable fields of a student.
func UpdateStudent(q Queryer, s *models.Student) error {
	query := `UPDATE students SET first_name = $1, last_name = $2, email = $3, phone = $4,
				address = $5, gender = $6, date_of_birth = $7, class_id = $8, updated_at = NOW()
			  WHERE id = $9`
	res, err := q.Exec(query, s.FirstName, s.LastName, s.Email, s.Phone, s.Address,
		s.Gender, s.DateOfBirth, s.ClassID, s.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStudent removes a student and, when linked, the login identity.
// Runs in one transaction so a failed identity delete aborts the whole
// operation.
func DeleteStudent(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userID *string
	if err := tx.QueryRow(`SELECT user_id FROM students WHERE id = $1`, id).Scan(&userID); err != nil {
		return Translate(err)
	}

	if _, err := tx.Exec(`DELETE FROM students WHERE id = $1`, id); err != nil {
		return Translate(err)
	}
	if userID != nil {
		if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, *userID); err != nil {
			return Translate(err)
		}
	}
	return tx.Commit()
}

// LinkParent attaches a parent to a student with the given relationship.
func LinkParent(q Queryer, link *models.StudentParent) error {
	if link.Relationship == "" {
		link.Relationship = models.Guardian
	}
	query := `INSERT INTO student_parents (student_id, parent_id, relationship)
			  VALUES ($1, $2, $3) RETURNING id, created_at`
	err := q.QueryRow(query, link.StudentID, link.ParentID, link.Relationship).Scan(&link.ID, &link.CreatedAt)
	return Translate(err)
}

// UnlinkParent detaches a parent from a student.
func UnlinkParent(q Queryer, studentID, parentID string) error {
	res, err := q.Exec(`DELETE FROM student_parents WHERE student_id = $1 AND parent_id = $2`, studentID, parentID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStudentParents returns a student's parents/guardians.
func GetStudentParents(q Queryer, studentID string) ([]*models.Parent, error) {
	query := `SELECT p.id, p.first_name, p.last_name, p.email, p.phone, p.user_id, p.created_at, p.updated_at
			  FROM parents p
			  JOIN student_parents sp ON sp.parent_id = p.id
			  WHERE sp.student_id = $1
			  ORDER BY p.last_name, p.first_name`
	rows, err := q.Query(query, studentID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var parents []*models.Parent
	for rows.Next() {
		p := &models.Parent{}
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
			&p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}
