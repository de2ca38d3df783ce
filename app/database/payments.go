package database

import (
	"fmt"

	"oakridge-academy/app/models"
)

const paymentColumns = `p.id, p.invoice_id, p.student_id, p.parent_id, p.amount, p.payment_date,
	p.method, p.status, p.transaction_id, p.notes, p.created_at, p.updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	p := &models.Payment{}
	err := row.Scan(
		&p.ID, &p.InvoiceID, &p.StudentID, &p.ParentID, &p.Amount, &p.PaymentDate,
		&p.Method, &p.Status, &p.TransactionID, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, Translate(err)
	}
	return p, nil
}

// InsertPayment writes a payment row.
func InsertPayment(q Queryer, p *models.Payment) error {
	if p.Status == "" {
		p.Status = models.PaymentCompleted
	}
	if p.Method == "" {
		p.Method = "cash"
	}
	query := `INSERT INTO payments (invoice_id, student_id, parent_id, amount, payment_date,
				method, status, transaction_id, notes)
			  VALUES ($1, $2, $3, $4, COALESCE($5, CURRENT_DATE), $6, $7, $8, $9)
			  RETURNING id, payment_date, created_at, updated_at`
	var date interface{}
	if !p.PaymentDate.IsZero() {
		date = p.PaymentDate
	}
	err := q.QueryRow(query, p.InvoiceID, p.StudentID, p.ParentID, p.Amount, date,
		p.Method, p.Status, p.TransactionID, p.Notes).Scan(
		&p.ID, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt,
	)
	return Translate(err)
}

// ListInvoicePayments returns every payment linked to an invoice,
// regardless of payment status, oldest first.
func ListInvoicePayments(q Queryer, invoiceID string) ([]*models.Payment, error) {
	rows, err := q.Query(`SELECT `+paymentColumns+` FROM payments p
						  WHERE p.invoice_id = $1 ORDER BY p.payment_date, p.created_at`, invoiceID)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// PaymentFilters narrows payment listings.
type PaymentFilters struct {
	StudentID string
	ParentID  string
	Status    string
}

// ListPayments returns payments matching the filters, newest first.
func ListPayments(q Queryer, f PaymentFilters) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE 1=1`
	var args []interface{}

	if f.StudentID != "" {
		query += fmt.Sprintf(" AND p.student_id = $%d", len(args)+1)
		args = append(args, f.StudentID)
	}
	if f.ParentID != "" {
		query += fmt.Sprintf(" AND p.parent_id = $%d", len(args)+1)
		args = append(args, f.ParentID)
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND p.status = $%d", len(args)+1)
		args = append(args, f.Status)
	}
	query += " ORDER BY p.payment_date DESC, p.created_at DESC"

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, Translate(err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// GetPaymentByID loads one payment.
func GetPaymentByID(q Queryer, id string) (*models.Payment, error) {
	return scanPayment(q.QueryRow(`SELECT `+paymentColumns+` FROM payments p WHERE p.id = $1`, id))
}

// UpdatePaymentStatus moves a payment between pending/completed/failed/
// refunded. The caller is responsible for reconciling the linked invoice
// afterwards.
func UpdatePaymentStatus(q Queryer, id string, status models.PaymentStatus) (*models.Payment, error) {
	_, err := q.Exec(`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return nil, Translate(err)
	}
	return GetPaymentByID(q, id)
}
