package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records money received against an invoice. StudentID and
// ParentID are copied from the invoice when the payment is recorded so
// payment history survives invoice deletion.
type Payment struct {
	ID            string          `json:"id"`
	InvoiceID     *string         `json:"invoice_id,omitempty"`
	StudentID     string          `json:"student_id"`
	ParentID      string          `json:"parent_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Method        string          `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	Parent  *Parent  `json:"parent,omitempty"`
}

// Counted reports whether the payment counts toward an invoice's amount
// paid. Only completed payments count; pending, failed and refunded
// payments stay on record but do not reduce the balance.
func (p *Payment) Counted() bool {
	return p.Status == PaymentCompleted
}
