package database

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"

	"oakridge-academy/app/models"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so query helpers can
// run standalone or inside a caller-owned transaction.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CreateUser inserts a login identity with a hashed password and assigns
// the given roles.
func CreateUser(q Queryer, user *models.User, roleNames ...string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (email, password, first_name, last_name)
			  VALUES ($1, $2, $3, $4) RETURNING id, is_active, created_at, updated_at`
	err = q.QueryRow(query, user.Email, hashed, user.FirstName, user.LastName).Scan(
		&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return Translate(err)
	}
	user.Password = ""

	for _, name := range roleNames {
		if err := AssignRole(q, user.ID, name); err != nil {
			return err
		}
	}
	return nil
}

// AssignRole grants the named role to a user.
func AssignRole(q Queryer, userID, roleName string) error {
	query := `INSERT INTO user_roles (user_id, role_id)
			  SELECT $1, id FROM roles WHERE name = $2
			  ON CONFLICT DO NOTHING`
	res, err := q.Exec(query, userID, roleName)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the role does not exist or the grant was already present;
		// verify the role so a typo surfaces as not-found.
		var id string
		if err := q.QueryRow(`SELECT id FROM roles WHERE name = $1`, roleName).Scan(&id); err != nil {
			return Translate(err)
		}
	}
	return nil
}

// GetUserByEmail loads an active user by email, without roles.
func GetUserByEmail(q Queryer, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := q.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return user, nil
}

// GetUserByID loads an active user by id, without roles.
func GetUserByID(q Queryer, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	err := q.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return user, nil
}

// GetUserRoles returns the roles held by a user.
func GetUserRoles(q Queryer, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := q.Query(query, userID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

// UpdateUserPassword replaces a user's password hash.
func UpdateUserPassword(q Queryer, userID, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	res, err := q.Exec(query, hashedPassword, userID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// HashPassword exposes the bcrypt hash used for stored credentials.
func HashPassword(password string) (string, error) {
	return hashPassword(password)
}

// DeleteUser removes a login identity and its role grants.
func DeleteUser(q Queryer, userID string) error {
	res, err := q.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRoles returns all roles.
func ListRoles(q Queryer) ([]*models.Role, error) {
	rows, err := q.Query(`SELECT id, name, created_at, updated_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

// DeleteRole removes a role. Rejected while any user still holds it.
func DeleteRole(q Queryer, roleID string) error {
	var holders int
	if err := q.QueryRow(`SELECT COUNT(*) FROM user_roles WHERE role_id = $1`, roleID).Scan(&holders); err != nil {
		return Translate(err)
	}
	if holders > 0 {
		return ErrInUse
	}

	res, err := q.Exec(`DELETE FROM roles WHERE id = $1`, roleID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
