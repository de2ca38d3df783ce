package invoices

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/policy"
)

func TestScopeInvoiceFiltersAdminUnrestricted(t *testing.T) {
	caller := policy.Caller{Roles: []string{models.RoleAdmin}}
	filters := database.InvoiceFilters{ParentID: "parent-9"}

	require.NoError(t, scopeInvoiceFilters(caller, &filters))
	assert.Equal(t, "parent-9", filters.ParentID)
}

func TestScopeInvoiceFiltersPinsParent(t *testing.T) {
	caller := policy.Caller{Roles: []string{models.RoleParent}, ParentID: "parent-1"}
	filters := database.InvoiceFilters{ParentID: "parent-9"}

	require.NoError(t, scopeInvoiceFilters(caller, &filters))
	assert.Equal(t, "parent-1", filters.ParentID)
}

func TestScopeInvoiceFiltersPinsStudent(t *testing.T) {
	caller := policy.Caller{Roles: []string{models.RoleStudent}, StudentID: "student-1"}
	filters := database.InvoiceFilters{}

	require.NoError(t, scopeInvoiceFilters(caller, &filters))
	assert.Equal(t, "student-1", filters.StudentID)
}

func TestScopeInvoiceFiltersRejectsUnlinkedProfile(t *testing.T) {
	// A parent or student role without a linked profile row has no family
	// scope; the listing must be refused, not returned unfiltered.
	for _, role := range []string{models.RoleParent, models.RoleStudent} {
		caller := policy.Caller{Roles: []string{role}}
		filters := database.InvoiceFilters{}

		err := scopeInvoiceFilters(caller, &filters)
		var ferr *fiber.Error
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, fiber.StatusForbidden, ferr.Code)
		assert.Empty(t, filters.ParentID)
		assert.Empty(t, filters.StudentID)
	}
}

func TestScopeInvoiceFiltersRejectsTeacher(t *testing.T) {
	caller := policy.Caller{Roles: []string{models.RoleTeacher}, TeacherID: "teacher-1"}

	err := scopeInvoiceFilters(caller, &database.InvoiceFilters{})
	var ferr *fiber.Error
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, fiber.StatusForbidden, ferr.Code)
}

func TestScopePaymentFiltersPinsParent(t *testing.T) {
	caller := policy.Caller{Roles: []string{models.RoleParent}, ParentID: "parent-1"}
	filters := database.PaymentFilters{ParentID: "parent-9", StudentID: "student-9"}

	require.NoError(t, scopePaymentFilters(caller, &filters))
	assert.Equal(t, "parent-1", filters.ParentID)
}

func TestScopePaymentFiltersRejectsUnlinkedProfile(t *testing.T) {
	for _, role := range []string{models.RoleParent, models.RoleStudent} {
		caller := policy.Caller{Roles: []string{role}}

		err := scopePaymentFilters(caller, &database.PaymentFilters{})
		var ferr *fiber.Error
		require.ErrorAs(t, err, &ferr)
		assert.Equal(t, fiber.StatusForbidden, ferr.Code)
	}
}
