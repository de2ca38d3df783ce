package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors recovered at the handler boundary and translated into
// user-facing responses. Nothing below the routes layer touches HTTP codes.
var (
	// ErrNotFound: the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict: the record was modified by another request since it was
	// read. The caller should reload and retry.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrInvoiceSettled: payment attempted against a paid or waived invoice.
	ErrInvoiceSettled = errors.New("invoice is already settled")

	// ErrInUse: delete rejected because protected dependents still
	// reference the record.
	ErrInUse = errors.New("record is still referenced")
)

// ValidationError reports malformed input tied to a specific field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// NewValidationError builds a field-level validation error.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// Postgres error codes of interest.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Translate maps driver-level errors onto the domain error taxonomy.
// Unique violations become field validation errors, foreign key
// violations become ErrInUse/ErrNotFound depending on direction, and
// sql.ErrNoRows becomes ErrNotFound.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return &ValidationError{Field: pqErr.Constraint, Msg: "already exists"}
		case pgForeignKeyViolation:
			return ErrInUse
		}
	}
	return err
}
