package database

import "oakridge-academy/app/models"

// ListSubjects returns all subjects ordered by name.
func ListSubjects(q Queryer) ([]*models.Subject, error) {
	rows, err := q.Query(`SELECT id, name, code, description, created_at, updated_at
						  FROM subjects ORDER BY name`)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s := &models.Subject{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetSubjectByID loads one subject.
func GetSubjectByID(q Queryer, id string) (*models.Subject, error) {
	s := &models.Subject{}
	err := q.QueryRow(`SELECT id, name, code, description, created_at, updated_at
					   FROM subjects WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.Code, &s.Description, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return s, nil
}

// CreateSubject inserts a subject row.
func CreateSubject(q Queryer, s *models.Subject) error {
	query := `INSERT INTO subjects (name, code, description)
			  VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, s.Name, s.Code, s.Description).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return Translate(err)
}

// UpdateSubject updates a subject.
func UpdateSubject(q Queryer, s *models.Subject) error {
	query := `UPDATE subjects SET name = $1, code = $2, description = $3, updated_at = NOW() WHERE id = $4`
	res, err := q.Exec(query, s.Name, s.Code, s.Description, s.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubject removes a subject. Rejected while enrollments, exams or
// teaching assignments still reference it.
func DeleteSubject(q Queryer, id string) error {
	var refs int
	err := q.QueryRow(`SELECT
			(SELECT COUNT(*) FROM enrollments WHERE subject_id = $1) +
			(SELECT COUNT(*) FROM exams WHERE subject_id = $1) +
			(SELECT COUNT(*) FROM teacher_class_subjects WHERE subject_id = $1)`, id).Scan(&refs)
	if err != nil {
		return Translate(err)
	}
	if refs > 0 {
		return ErrInUse
	}

	res, err := q.Exec(`DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
