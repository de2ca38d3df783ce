package database

import (
	"database/sql"
	"fmt"

	"oakridge-academy/app/models"
)

const parentColumns = `p.id, p.first_name, p.last_name, p.email, p.phone, p.user_id, p.created_at, p.updated_at`

func scanParent(row interface{ Scan(...interface{}) error }) (*models.Parent, error) {
	p := &models.Parent{}
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, Translate(err)
	}
	return p, nil
}

// ListParents returns parents, optionally filtered by a name/email search.
func ListParents(q Queryer, search string, limit, offset int) ([]*models.Parent, error) {
	query := `SELECT ` + parentColumns + ` FROM parents p WHERE 1=1`
	var args []interface{}

	if search != "" {
		pattern := "%" + search + "%"
		query += fmt.Sprintf(` AND (p.first_name ILIKE $%d OR p.last_name ILIKE $%d OR p.email ILIKE $%d)`,
			len(args)+1, len(args)+2, len(args)+3)
		args = append(args, pattern, pattern, pattern)
	}
	query += " ORDER BY p.last_name, p.first_name"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, limit, offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var parents []*models.Parent
	for rows.Next() {
		p, err := scanParent(rows)
		if err != nil {
			return nil, err
		}
		parents = append(parents, p)
	}
	return parents, rows.Err()
}

// GetParentByID loads one parent.
func GetParentByID(q Queryer, id string) (*models.Parent, error) {
	return scanParent(q.QueryRow(`SELECT `+parentColumns+` FROM parents p WHERE p.id = $1`, id))
}

// GetParentByUserID resolves a parent from their login identity.
func GetParentByUserID(q Queryer, userID string) (*models.Parent, error) {
	return scanParent(q.QueryRow(`SELECT `+parentColumns+` FROM parents p WHERE p.user_id = $1`, userID))
}

// CreateParent inserts a parent row.
func CreateParent(q Queryer, p *models.Parent) error {
	query := `INSERT INTO parents (first_name, last_name, email, phone, user_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, p.FirstName, p.LastName, p.Email, p.Phone, p.UserID).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	)
	return Translate(err)
}

// UpdateParent updates the mutable fields of a parent.
func UpdateParent(q Queryer, p *models.Parent) error {
	query := `UPDATE parents SET first_name = $1, last_name = $2, email = $3, phone = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := q.Exec(query, p.FirstName, p.LastName, p.Email, p.Phone, p.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteParent removes a parent and, when linked, the login identity.
// Rejected while the parent is still the responsible party on invoices.
func DeleteParent(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var open int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM invoices WHERE parent_id = $1`, id).Scan(&open); err != nil {
		return Translate(err)
	}
	if open > 0 {
		return ErrInUse
	}

	var userID *string
	if err := tx.QueryRow(`SELECT user_id FROM parents WHERE id = $1`, id).Scan(&userID); err != nil {
		return Translate(err)
	}
	if _, err := tx.Exec(`DELETE FROM parents WHERE id = $1`, id); err != nil {
		return Translate(err)
	}
	if userID != nil {
		if _, err := tx.Exec(`DELETE FROM users WHERE id = $1`, *userID); err != nil {
			return Translate(err)
		}
	}
	return tx.Commit()
}

// GetParentChildren returns the students linked to a parent.
func GetParentChildren(q Queryer, parentID string) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + `
			  FROM students s
			  JOIN student_parents sp ON sp.student_id = s.id
			  WHERE sp.parent_id = $1
			  ORDER BY s.last_name, s.first_name`
	rows, err := q.Query(query, parentID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var children []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, s)
	}
	return children, rows.Err()
}
