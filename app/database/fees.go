package database

import "oakridge-academy/app/models"

// --- Fee types ---

// ListFeeTypes returns the fee catalog; activeOnly hides retired entries.
func ListFeeTypes(q Queryer, activeOnly bool) ([]*models.FeeType, error) {
	query := `SELECT id, name, description, is_active, created_at, updated_at FROM fee_types`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(query)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var types []*models.FeeType
	for rows.Next() {
		ft := &models.FeeType{}
		if err := rows.Scan(&ft.ID, &ft.Name, &ft.Description, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, ft)
	}
	return types, rows.Err()
}

// GetFeeTypeByID loads one fee type.
func GetFeeTypeByID(q Queryer, id string) (*models.FeeType, error) {
	ft := &models.FeeType{}
	err := q.QueryRow(`SELECT id, name, description, is_active, created_at, updated_at
					   FROM fee_types WHERE id = $1`, id).Scan(
		&ft.ID, &ft.Name, &ft.Description, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return ft, nil
}

// CreateFeeType inserts a fee type.
func CreateFeeType(q Queryer, ft *models.FeeType) error {
	query := `INSERT INTO fee_types (name, description) VALUES ($1, $2)
			  RETURNING id, is_active, created_at, updated_at`
	err := q.QueryRow(query, ft.Name, ft.Description).Scan(&ft.ID, &ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
	return Translate(err)
}

// UpdateFeeType updates a fee type.
func UpdateFeeType(q Queryer, ft *models.FeeType) error {
	query := `UPDATE fee_types SET name = $1, description = $2, is_active = $3, updated_at = NOW() WHERE id = $4`
	res, err := q.Exec(query, ft.Name, ft.Description, ft.IsActive, ft.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteFeeType removes a fee type. Rejected while invoice items, class
// fees or student fees still reference it.
func DeleteFeeType(q Queryer, id string) error {
	var refs int
	err := q.QueryRow(`SELECT
			(SELECT COUNT(*) FROM invoice_items WHERE fee_type_id = $1) +
			(SELECT COUNT(*) FROM class_fees WHERE fee_type_id = $1) +
			(SELECT COUNT(*) FROM student_fees WHERE fee_type_id = $1)`, id).Scan(&refs)
	if err != nil {
		return Translate(err)
	}
	if refs > 0 {
		return ErrInUse
	}

	res, err := q.Exec(`DELETE FROM fee_types WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Class fees ---

// ListClassFees returns the fee schedule, optionally for one class.
func ListClassFees(q Queryer, classID string) ([]*models.ClassFee, error) {
	query := `SELECT cf.id, cf.class_id, cf.fee_type_id, cf.amount, cf.effective_date,
				cf.created_at, cf.updated_at, c.name, c.section, ft.name
			  FROM class_fees cf
			  JOIN classes c ON c.id = cf.class_id
			  JOIN fee_types ft ON ft.id = cf.fee_type_id`
	var args []interface{}
	if classID != "" {
		query += ` WHERE cf.class_id = $1`
		args = append(args, classID)
	}
	query += ` ORDER BY c.name, ft.name`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var fees []*models.ClassFee
	for rows.Next() {
		cf := &models.ClassFee{Class: &models.Class{}, FeeType: &models.FeeType{}}
		if err := rows.Scan(&cf.ID, &cf.ClassID, &cf.FeeTypeID, &cf.Amount, &cf.EffectiveDate,
			&cf.CreatedAt, &cf.UpdatedAt, &cf.Class.Name, &cf.Class.Section, &cf.FeeType.Name); err != nil {
			return nil, err
		}
		cf.Class.ID, cf.FeeType.ID = cf.ClassID, cf.FeeTypeID
		fees = append(fees, cf)
	}
	return fees, rows.Err()
}

// GetClassFeeByID loads one class fee.
func GetClassFeeByID(q Queryer, id string) (*models.ClassFee, error) {
	cf := &models.ClassFee{}
	err := q.QueryRow(`SELECT id, class_id, fee_type_id, amount, effective_date, created_at, updated_at
					   FROM class_fees WHERE id = $1`, id).Scan(
		&cf.ID, &cf.ClassID, &cf.FeeTypeID, &cf.Amount, &cf.EffectiveDate, &cf.CreatedAt, &cf.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return cf, nil
}

// CreateClassFee inserts a class fee. One per (class, fee type).
func CreateClassFee(q Queryer, cf *models.ClassFee) error {
	query := `INSERT INTO class_fees (class_id, fee_type_id, amount, effective_date)
			  VALUES ($1, $2, $3, COALESCE($4, CURRENT_DATE))
			  RETURNING id, effective_date, created_at, updated_at`
	var effective interface{}
	if !cf.EffectiveDate.IsZero() {
		effective = cf.EffectiveDate
	}
	err := q.QueryRow(query, cf.ClassID, cf.FeeTypeID, cf.Amount, effective).Scan(
		&cf.ID, &cf.EffectiveDate, &cf.CreatedAt, &cf.UpdatedAt,
	)
	return Translate(err)
}

// UpdateClassFee updates the amount and effective date of a class fee.
func UpdateClassFee(q Queryer, cf *models.ClassFee) error {
	query := `UPDATE class_fees SET amount = $1, effective_date = $2, updated_at = NOW() WHERE id = $3`
	res, err := q.Exec(query, cf.Amount, cf.EffectiveDate, cf.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClassFee removes a class fee.
func DeleteClassFee(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM class_fees WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Student fees ---

// ListStudentFees returns fee assignments, optionally for one student.
func ListStudentFees(q Queryer, studentID string) ([]*models.StudentFee, error) {
	query := `SELECT sf.id, sf.student_id, sf.fee_type_id, sf.amount, sf.due_date, sf.status,
				sf.notes, sf.created_at, sf.updated_at,
				s.first_name || ' ' || s.last_name, ft.name
			  FROM student_fees sf
			  JOIN students s ON s.id = sf.student_id
			  JOIN fee_types ft ON ft.id = sf.fee_type_id`
	var args []interface{}
	if studentID != "" {
		query += ` WHERE sf.student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY sf.due_date`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var fees []*models.StudentFee
	for rows.Next() {
		sf := &models.StudentFee{Student: &models.Student{}, FeeType: &models.FeeType{}}
		var studentName string
		if err := rows.Scan(&sf.ID, &sf.StudentID, &sf.FeeTypeID, &sf.Amount, &sf.DueDate,
			&sf.Status, &sf.Notes, &sf.CreatedAt, &sf.UpdatedAt, &studentName, &sf.FeeType.Name); err != nil {
			return nil, err
		}
		sf.Student.ID, sf.FeeType.ID = sf.StudentID, sf.FeeTypeID
		sf.Student.FirstName = studentName
		fees = append(fees, sf)
	}
	return fees, rows.Err()
}

// GetStudentFeeByID loads one student fee.
func GetStudentFeeByID(q Queryer, id string) (*models.StudentFee, error) {
	sf := &models.StudentFee{}
	err := q.QueryRow(`SELECT id, student_id, fee_type_id, amount, due_date, status, notes, created_at, updated_at
					   FROM student_fees WHERE id = $1`, id).Scan(
		&sf.ID, &sf.StudentID, &sf.FeeTypeID, &sf.Amount, &sf.DueDate, &sf.Status, &sf.Notes,
		&sf.CreatedAt, &sf.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return sf, nil
}

// CreateStudentFee inserts a student fee assignment.
func CreateStudentFee(q Queryer, sf *models.StudentFee) error {
	if sf.Status == "" {
		sf.Status = "outstanding"
	}
	query := `INSERT INTO student_fees (student_id, fee_type_id, amount, due_date, status, notes)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	err := q.QueryRow(query, sf.StudentID, sf.FeeTypeID, sf.Amount, sf.DueDate, sf.Status, sf.Notes).Scan(
		&sf.ID, &sf.CreatedAt, &sf.UpdatedAt,
	)
	return Translate(err)
}

// UpdateStudentFee updates a student fee assignment.
func UpdateStudentFee(q Queryer, sf *models.StudentFee) error {
	query := `UPDATE student_fees SET amount = $1, due_date = $2, status = $3, notes = $4, updated_at = NOW()
			  WHERE id = $5`
	res, err := q.Exec(query, sf.Amount, sf.DueDate, sf.Status, sf.Notes, sf.ID)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteStudentFee removes a student fee assignment.
func DeleteStudentFee(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM student_fees WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
