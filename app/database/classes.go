package database

import "oakridge-academy/app/models"

// ListClasses returns all classes ordered by year then name.
func ListClasses(q Queryer) ([]*models.Class, error) {
	query := `SELECT id, name, section, year_level, description, created_at, updated_at
			  FROM classes ORDER BY year_level NULLS LAST, name, section`
	rows, err := q.Query(query)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c := &models.Class{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Section, &c.YearLevel, &c.Description,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// GetClassByID loads one class.
func GetClassByID(q Queryer, id string) (*models.Class, error) {
	c := &models.Class{}
	err := q.QueryRow(`SELECT id, name, section, year_level, description, created_at, updated_at
					   FROM classes WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Section, &c.YearLevel, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return c, nil
}

// CreateClass inserts a class row.
func CreateClass(q Queryer, c *models.Class) error {
	query := `INSERT INTO classes (name, section, year_level, description)
			  VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, c.Name, c.Section, c.YearLevel, c.Description).Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt,
	)
	return Translate(err)
}

// UpdateClass updates a class.
func UpdateClass(q Queryer, c *models.Class) error {
	query := `UPDATE classes SET name = $1, section = $2, year_level = $3, description = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := q.Exec(query, c.Name, c.Section, c.YearLevel, c.Description, c.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClass removes a class. Rejected while students or enrollments
// still reference it.
func DeleteClass(q Queryer, id string) error {
	var refs int
	err := q.QueryRow(`SELECT
			(SELECT COUNT(*) FROM students WHERE class_id = $1) +
			(SELECT COUNT(*) FROM enrollments WHERE class_id = $1)`, id).Scan(&refs)
	if err != nil {
		return Translate(err)
	}
	if refs > 0 {
		return ErrInUse
	}

	res, err := q.Exec(`DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
