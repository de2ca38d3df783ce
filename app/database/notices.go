package database

import (
	"fmt"
	"time"

	"oakridge-academy/app/models"
)

// ListNotices returns notices visible to the given audience, newest
// first. An empty audience returns everything (admin view).
func ListNotices(q Queryer, audience models.NoticeAudience, activeOn time.Time) ([]*models.Notice, error) {
	query := `SELECT id, title, content, publish_date, expiry_date, audience, created_at, updated_at
			  FROM notices WHERE 1=1`
	var args []interface{}

	if audience != "" {
		query += ` AND (audience = 'all' OR audience = $1)`
		args = append(args, audience)
	}
	if !activeOn.IsZero() {
		query += fmt.Sprintf(` AND publish_date <= $%d AND (expiry_date IS NULL OR expiry_date >= $%d)`,
			len(args)+1, len(args)+2)
		args = append(args, activeOn, activeOn)
	}
	query += ` ORDER BY publish_date DESC`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var notices []*models.Notice
	for rows.Next() {
		n := &models.Notice{}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PublishDate, &n.ExpiryDate,
			&n.Audience, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// GetNoticeByID loads one notice.
func GetNoticeByID(q Queryer, id string) (*models.Notice, error) {
	n := &models.Notice{}
	err := q.QueryRow(`SELECT id, title, content, publish_date, expiry_date, audience, created_at, updated_at
					   FROM notices WHERE id = $1`, id).Scan(
		&n.ID, &n.Title, &n.Content, &n.PublishDate, &n.ExpiryDate, &n.Audience,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return n, nil
}

// CreateNotice inserts a notice.
func CreateNotice(q Queryer, n *models.Notice) error {
	if n.Audience == "" {
		n.Audience = models.AudienceAll
	}
	query := `INSERT INTO notices (title, content, publish_date, expiry_date, audience)
			  VALUES ($1, $2, COALESCE($3, CURRENT_DATE), $4, $5)
			  RETURNING id, publish_date, created_at, updated_at`
	var publish interface{}
	if !n.PublishDate.IsZero() {
		publish = n.PublishDate
	}
	err := q.QueryRow(query, n.Title, n.Content, publish, n.ExpiryDate, n.Audience).Scan(
		&n.ID, &n.PublishDate, &n.CreatedAt, &n.UpdatedAt,
	)
	return Translate(err)
}

// UpdateNotice updates a notice.
func UpdateNotice(q Queryer, n *models.Notice) error {
	query := `UPDATE notices SET title = $1, content = $2, publish_date = $3, expiry_date = $4,
				audience = $5, updated_at = NOW()
			  WHERE id = $6`
	res, err := q.Exec(query, n.Title, n.Content, n.PublishDate, n.ExpiryDate, n.Audience, n.ID)
	if err != nil {
		return Translate(err)
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteNotice removes a notice.
func DeleteNotice(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHolidays returns all holidays in date order.
func ListHolidays(q Queryer) ([]*models.Holiday, error) {
	rows, err := q.Query(`SELECT id, title, holiday_date, description, created_at, updated_at
						  FROM holidays ORDER BY holiday_date`)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var holidays []*models.Holiday
	for rows.Next() {
		h := &models.Holiday{}
		if err := rows.Scan(&h.ID, &h.Title, &h.HolidayDate, &h.Description, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetHolidayByID loads one holiday.
func GetHolidayByID(q Queryer, id string) (*models.Holiday, error) {
	h := &models.Holiday{}
	err := q.QueryRow(`SELECT id, title, holiday_date, description, created_at, updated_at
					   FROM holidays WHERE id = $1`, id).Scan(
		&h.ID, &h.Title, &h.HolidayDate, &h.Description, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return h, nil
}

// CreateHoliday inserts a holiday.
func CreateHoliday(q Queryer, h *models.Holiday) error {
	query := `INSERT INTO holidays (title, holiday_date, description)
			  VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, h.Title, h.HolidayDate, h.Description).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
	return Translate(err)
}

// UpdateHoliday updates a holiday.
func UpdateHoliday(q Queryer, h *models.Holiday) error {
	query := `UPDATE holidays SET title = $1, holiday_date = $2, description = $3, updated_at = NOW()
			  WHERE id = $4`
	res, err := q.Exec(query, h.Title, h.HolidayDate, h.Description, h.ID)
	if err != nil {
		return Translate(err)
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteHoliday removes a holiday.
func DeleteHoliday(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return ErrNotFound
	}
	return nil
}
