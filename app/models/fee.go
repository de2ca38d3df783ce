package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeType is a catalog entry for a kind of fee (tuition, transport, lab...).
// Read-only input to invoice creation; never mutated by reconciliation.
type FeeType struct {
	ID          string    `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassFee sets the default amount of a fee type for every student of a class.
// One row per (class, fee type).
type ClassFee struct {
	ID            string          `json:"id"`
	ClassID       string          `json:"class_id" validate:"required,uuid"`
	FeeTypeID     string          `json:"fee_type_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Class   *Class   `json:"class,omitempty"`
	FeeType *FeeType `json:"fee_type,omitempty"`
}

// StudentFee assigns a fee type to a single student, overriding or
// supplementing the class-level schedule.
type StudentFee struct {
	ID        string          `json:"id"`
	StudentID string          `json:"student_id" validate:"required,uuid"`
	FeeTypeID string          `json:"fee_type_id" validate:"required,uuid"`
	Amount    decimal.Decimal `json:"amount"`
	DueDate   time.Time       `json:"due_date"`
	Status    string          `json:"status"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	FeeType *FeeType `json:"fee_type,omitempty"`
}
