package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an itemized billing document for a student, owned by the
// responsible parent. AmountPaid and Status are derived by reconciliation
// from the linked payments and are never edited directly.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	IssueDate     time.Time       `json:"issue_date"`
	DueDate       time.Time       `json:"due_date"`
	StudentID     string          `json:"student_id" validate:"required,uuid"`
	ParentID      string          `json:"parent_id" validate:"required,uuid"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Status        InvoiceStatus   `json:"status"`
	Notes         *string         `json:"notes,omitempty"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Student  *Student       `json:"student,omitempty"`
	Parent   *Parent        `json:"parent,omitempty"`
	Items    []*InvoiceItem `json:"items,omitempty"`
	Payments []*Payment     `json:"payments,omitempty"`
}

// BalanceDue is TotalAmount minus AmountPaid. Always derived, never stored.
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.TotalAmount.Sub(i.AmountPaid)
}

// ItemsTotal sums the invoice's line items.
func (i *Invoice) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// InvoiceItem is a single line on an invoice, priced against a fee type.
type InvoiceItem struct {
	ID          string          `json:"id"`
	InvoiceID   string          `json:"invoice_id"`
	FeeTypeID   string          `json:"fee_type_id" validate:"required,uuid"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`

	FeeType *FeeType `json:"fee_type,omitempty"`
}
