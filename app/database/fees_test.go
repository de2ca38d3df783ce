package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteFeeTypeRejectedWhileReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ft-1").
		WillReturnRows(sqlmock.NewRows([]string{"refs"}).AddRow(3))

	// Invoice items, class fees or student fees still reference the fee
	// type; the delete must never reach the table.
	assert.ErrorIs(t, DeleteFeeType(db, "ft-1"), ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeTypeUnreferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ft-1").
		WillReturnRows(sqlmock.NewRows([]string{"refs"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM fee_types`).WithArgs("ft-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, DeleteFeeType(db, "ft-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeTypeMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).WithArgs("ft-1").
		WillReturnRows(sqlmock.NewRows([]string{"refs"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM fee_types`).WithArgs("ft-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, DeleteFeeType(db, "ft-1"), ErrNotFound)
}
