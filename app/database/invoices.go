package database

import (
	"fmt"
	"time"

	"oakridge-academy/app/models"
)

const invoiceColumns = `i.id, i.invoice_number, i.issue_date, i.due_date, i.student_id, i.parent_id,
	i.total_amount, i.amount_paid, i.status, i.notes, i.version, i.created_at, i.updated_at`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.IssueDate, &inv.DueDate, &inv.StudentID, &inv.ParentID,
		&inv.TotalAmount, &inv.AmountPaid, &inv.Status, &inv.Notes, &inv.Version,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return inv, nil
}

// InvoiceFilters narrows invoice listings.
type InvoiceFilters struct {
	StudentID string
	ParentID  string
	Status    string
}

// ListInvoices returns invoice summaries matching the filters, newest
// issue date first.
func ListInvoices(q Queryer, f InvoiceFilters) ([]*models.InvoiceSummary, error) {
	query := `SELECT ` + invoiceColumns + `,
				s.first_name || ' ' || s.last_name,
				p.first_name || ' ' || p.last_name
			  FROM invoices i
			  JOIN students s ON s.id = i.student_id
			  JOIN parents p ON p.id = i.parent_id
			  WHERE 1=1`
	var args []interface{}

	if f.StudentID != "" {
		query += fmt.Sprintf(" AND i.student_id = $%d", len(args)+1)
		args = append(args, f.StudentID)
	}
	if f.ParentID != "" {
		query += fmt.Sprintf(" AND i.parent_id = $%d", len(args)+1)
		args = append(args, f.ParentID)
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND i.status = $%d", len(args)+1)
		args = append(args, f.Status)
	}
	query += " ORDER BY i.issue_date DESC, i.invoice_number DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var invoices []*models.InvoiceSummary
	for rows.Next() {
		sum := &models.InvoiceSummary{}
		if err := rows.Scan(
			&sum.ID, &sum.InvoiceNumber, &sum.IssueDate, &sum.DueDate, &sum.StudentID, &sum.ParentID,
			&sum.TotalAmount, &sum.AmountPaid, &sum.Status, &sum.Notes, &sum.Version,
			&sum.CreatedAt, &sum.UpdatedAt, &sum.StudentName, &sum.ParentName,
		); err != nil {
			return nil, err
		}
		invoices = append(invoices, sum)
	}
	return invoices, rows.Err()
}

// GetInvoiceByID loads the invoice row only.
func GetInvoiceByID(q Queryer, id string) (*models.Invoice, error) {
	return scanInvoice(q.QueryRow(`SELECT `+invoiceColumns+` FROM invoices i WHERE i.id = $1`, id))
}

// GetInvoiceForUpdate loads the invoice row with a row lock so the
// payment set cannot change under the running transaction.
func GetInvoiceForUpdate(q Queryer, id string) (*models.Invoice, error) {
	return scanInvoice(q.QueryRow(`SELECT `+invoiceColumns+` FROM invoices i WHERE i.id = $1 FOR UPDATE`, id))
}

// GetInvoiceDetails loads an invoice with items and payments attached.
func GetInvoiceDetails(q Queryer, id string) (*models.Invoice, error) {
	inv, err := GetInvoiceByID(q, id)
	if err != nil {
		return nil, err
	}
	if inv.Items, err = ListInvoiceItems(q, id); err != nil {
		return nil, err
	}
	if inv.Payments, err = ListInvoicePayments(q, id); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvoiceItems returns an invoice's line items in insertion order.
func ListInvoiceItems(q Queryer, invoiceID string) ([]*models.InvoiceItem, error) {
	query := `SELECT ii.id, ii.invoice_id, ii.fee_type_id, ii.description, ii.amount, ii.created_at, ft.name
			  FROM invoice_items ii
			  JOIN fee_types ft ON ft.id = ii.fee_type_id
			  WHERE ii.invoice_id = $1
			  ORDER BY ii.created_at, ii.id`
	rows, err := q.Query(query, invoiceID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var items []*models.InvoiceItem
	for rows.Next() {
		item := &models.InvoiceItem{FeeType: &models.FeeType{}}
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.FeeTypeID, &item.Description,
			&item.Amount, &item.CreatedAt, &item.FeeType.Name); err != nil {
			return nil, err
		}
		item.FeeType.ID = item.FeeTypeID
		items = append(items, item)
	}
	return items, rows.Err()
}

// NextInvoiceNumber allocates the next human-readable invoice number for
// the year, e.g. INV-2026-0042. The sequence continues from the highest
// suffix on record, so a deleted invoice never frees its number for
// reuse. Callers must hold a transaction spanning the subsequent insert;
// the unique constraint backstops races.
func NextInvoiceNumber(q Queryer, year int) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", year)
	query := `SELECT COALESCE(MAX((SUBSTRING(invoice_number FROM '[0-9]+$'))::INT), 0) + 1
			  FROM invoices WHERE invoice_number LIKE $1 || '%'`
	var seq int
	if err := q.QueryRow(query, prefix).Scan(&seq); err != nil {
		return "", Translate(err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// InsertInvoice writes the invoice header row.
func InsertInvoice(q Queryer, inv *models.Invoice) error {
	query := `INSERT INTO invoices (invoice_number, issue_date, due_date, student_id, parent_id,
				total_amount, amount_paid, status, notes)
			  VALUES ($1, COALESCE($2, CURRENT_DATE), $3, $4, $5, $6, 0, $7, $8)
			  RETURNING id, issue_date, amount_paid, version, created_at, updated_at`
	var issue interface{}
	if !inv.IssueDate.IsZero() {
		issue = inv.IssueDate
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceOutstanding
	}
	err := q.QueryRow(query, inv.InvoiceNumber, issue, inv.DueDate, inv.StudentID, inv.ParentID,
		inv.TotalAmount, inv.Status, inv.Notes).Scan(
		&inv.ID, &inv.IssueDate, &inv.AmountPaid, &inv.Version, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return Translate(err)
}

// InsertInvoiceItem writes one line item.
func InsertInvoiceItem(q Queryer, item *models.InvoiceItem) error {
	query := `INSERT INTO invoice_items (invoice_id, fee_type_id, description, amount)
			  VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := q.QueryRow(query, item.InvoiceID, item.FeeTypeID, item.Description, item.Amount).Scan(
		&item.ID, &item.CreatedAt,
	)
	return Translate(err)
}

// DeleteInvoiceItems clears an invoice's line items ahead of a rewrite.
func DeleteInvoiceItems(q Queryer, invoiceID string) error {
	_, err := q.Exec(`DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	return Translate(err)
}

// UpdateInvoiceHeader updates the editable header fields of an invoice
// with an optimistic version check. A stale version yields ErrConflict.
func UpdateInvoiceHeader(q Queryer, inv *models.Invoice) error {
	query := `UPDATE invoices
			  SET invoice_number = $1, issue_date = $2, due_date = $3, student_id = $4,
				  parent_id = $5, notes = $6, version = version + 1, updated_at = NOW()
			  WHERE id = $7 AND version = $8`
	res, err := q.Exec(query, inv.InvoiceNumber, inv.IssueDate, inv.DueDate, inv.StudentID,
		inv.ParentID, inv.Notes, inv.ID, inv.Version)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return staleOrMissing(q, inv.ID)
	}
	inv.Version++
	return nil
}

// SaveReconciliation persists the derived totals and status with an
// optimistic version check. A stale version yields ErrConflict.
func SaveReconciliation(q Queryer, inv *models.Invoice) error {
	query := `UPDATE invoices
			  SET total_amount = $1, amount_paid = $2, status = $3, version = version + 1, updated_at = NOW()
			  WHERE id = $4 AND version = $5`
	res, err := q.Exec(query, inv.TotalAmount, inv.AmountPaid, inv.Status, inv.ID, inv.Version)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return staleOrMissing(q, inv.ID)
	}
	inv.Version++
	return nil
}

// staleOrMissing distinguishes a version conflict from a vanished row.
func staleOrMissing(q Queryer, id string) error {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM invoices WHERE id = $1`, id).Scan(&n); err != nil {
		return Translate(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

// DeleteInvoice removes an invoice. Items cascade; payments keep their
// history with the invoice link cleared (ON DELETE SET NULL).
func DeleteInvoice(q Queryer, id string) error {
	res, err := q.Exec(`DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return Translate(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListOpenInvoicesPastDue returns ids of unsettled invoices whose due
// date has passed and whose status does not yet say overdue. Used by the
// nightly sweep.
func ListOpenInvoicesPastDue(q Queryer, today time.Time) ([]string, error) {
	query := `SELECT id FROM invoices
			  WHERE due_date < $1 AND status IN ($2, $3)`
	rows, err := q.Query(query, today, models.InvoiceOutstanding, models.InvoicePartiallyPaid)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
