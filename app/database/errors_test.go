package database

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateNil(t *testing.T) {
	assert.NoError(t, Translate(nil))
}

func TestTranslateNoRows(t *testing.T) {
	assert.ErrorIs(t, Translate(sql.ErrNoRows), ErrNotFound)
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := Translate(&pq.Error{Code: "23505", Constraint: "invoices_number_key"})

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "invoices_number_key", vErr.Field)
	assert.Contains(t, vErr.Error(), "already exists")
}

func TestTranslateForeignKeyViolation(t *testing.T) {
	err := Translate(&pq.Error{Code: "23503", Constraint: "invoice_items_fee_type_id_fkey"})
	assert.ErrorIs(t, err, ErrInUse)
}

func TestTranslatePassesThroughUnknown(t *testing.T) {
	boom := errors.New("connection reset")
	assert.Equal(t, boom, Translate(boom))

	other := &pq.Error{Code: "40001"}
	assert.Equal(t, error(other), Translate(other))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("amount", "must be greater than zero")
	assert.EqualError(t, err, "amount: must be greater than zero")
}
