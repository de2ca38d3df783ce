package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextInvoiceNumberContinuesFromHighest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The allocator takes MAX of the recorded suffixes, so numbers freed
	// by deleted invoices are never handed out again.
	mock.ExpectQuery(`SELECT COALESCE\(MAX`).WithArgs("INV-2026-").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(43))

	number, err := NextInvoiceNumber(db, 2026)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0043", number)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextInvoiceNumberEmptyYear(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(MAX`).WithArgs("INV-2027-").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(1))

	number, err := NextInvoiceNumber(db, 2027)
	require.NoError(t, err)
	assert.Equal(t, "INV-2027-0001", number)
}
