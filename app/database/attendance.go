package database

import (
	"fmt"
	"time"

	"oakridge-academy/app/models"
)

// AttendanceFilters narrows attendance listings.
type AttendanceFilters struct {
	StudentID string
	ClassID   string
	SubjectID string
	DateFrom  string
	DateTo    string
}

// ListAttendance returns attendance rows matching the filters, newest first.
func ListAttendance(q Queryer, f AttendanceFilters) ([]*models.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.class_id, a.subject_id, a.attendance_date, a.status,
				a.created_at, a.updated_at, s.first_name, s.last_name
			  FROM attendance a
			  JOIN students s ON s.id = a.student_id
			  WHERE 1=1`
	var args []interface{}

	if f.StudentID != "" {
		query += fmt.Sprintf(" AND a.student_id = $%d", len(args)+1)
		args = append(args, f.StudentID)
	}
	if f.ClassID != "" {
		query += fmt.Sprintf(" AND a.class_id = $%d", len(args)+1)
		args = append(args, f.ClassID)
	}
	if f.SubjectID != "" {
		query += fmt.Sprintf(" AND a.subject_id = $%d", len(args)+1)
		args = append(args, f.SubjectID)
	}
	if f.DateFrom != "" {
		query += fmt.Sprintf(" AND a.attendance_date >= $%d", len(args)+1)
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		query += fmt.Sprintf(" AND a.attendance_date <= $%d", len(args)+1)
		args = append(args, f.DateTo)
	}
	query += " ORDER BY a.attendance_date DESC, s.last_name"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		a := &models.Attendance{Student: &models.Student{}}
		if err := rows.Scan(&a.ID, &a.StudentID, &a.ClassID, &a.SubjectID, &a.AttendanceDate,
			&a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.Student.FirstName, &a.Student.LastName); err != nil {
			return nil, err
		}
		a.Student.ID = a.StudentID
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetAttendanceByID loads one attendance row.
func GetAttendanceByID(q Queryer, id string) (*models.Attendance, error) {
	a := &models.Attendance{}
	err := q.QueryRow(`SELECT id, student_id, class_id, subject_id, attendance_date, status, created_at, updated_at
					   FROM attendance WHERE id = $1`, id).Scan(
		&a.ID, &a.StudentID, &a.ClassID, &a.SubjectID, &a.AttendanceDate, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return a, nil
}

// MarkAttendance upserts an attendance row for (student, subject, date).
// Re-marking the same lesson replaces the previous status.
func MarkAttendance(q Queryer, a *models.Attendance) error {
	if a.AttendanceDate.IsZero() {
		a.AttendanceDate = time.Now()
	}
	query := `INSERT INTO attendance (student_id, class_id, subject_id, attendance_date, status)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT ON CONSTRAINT attendance_daily_key
			  DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
			  RETURNING id, attendance_date, created_at, updated_at`
	err := q.QueryRow(query, a.StudentID, a.ClassID, a.SubjectID, a.AttendanceDate, a.Status).Scan(
		&a.ID, &a.AttendanceDate, &a.CreatedAt, &a.UpdatedAt,
	)
	return Translate(err)
}

// DeleteAttendance removes an attendance row.
func DeleteAttendance(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
