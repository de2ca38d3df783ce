package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceBalanceDue(t *testing.T) {
	inv := &Invoice{
		TotalAmount: decimal.RequireFromString("800.50"),
		AmountPaid:  decimal.RequireFromString("300.25"),
	}
	assert.True(t, decimal.RequireFromString("500.25").Equal(inv.BalanceDue()))
}

func TestInvoiceItemsTotal(t *testing.T) {
	inv := &Invoice{
		Items: []*InvoiceItem{
			{Amount: decimal.RequireFromString("100")},
			{Amount: decimal.RequireFromString("250.75")},
		},
	}
	assert.True(t, decimal.RequireFromString("350.75").Equal(inv.ItemsTotal()))

	empty := &Invoice{}
	assert.True(t, decimal.Zero.Equal(empty.ItemsTotal()))
}

func TestPaymentCounted(t *testing.T) {
	assert.True(t, (&Payment{Status: PaymentCompleted}).Counted())
	assert.False(t, (&Payment{Status: PaymentPending}).Counted())
	assert.False(t, (&Payment{Status: PaymentFailed}).Counted())
	assert.False(t, (&Payment{Status: PaymentRefunded}).Counted())
}

func TestUserHasRole(t *testing.T) {
	user := &User{Roles: []*Role{{Name: RoleAdmin}, {Name: RoleTeacher}}}
	assert.True(t, user.HasRole(RoleAdmin))
	assert.True(t, user.HasRole(RoleTeacher))
	assert.False(t, user.HasRole(RoleParent))
}

func TestClassNameWithSection(t *testing.T) {
	section := "A"
	assert.Equal(t, "Grade 10 - A", (&Class{Name: "Grade 10", Section: &section}).NameWithSection())
	assert.Equal(t, "Grade 10", (&Class{Name: "Grade 10"}).NameWithSection())
}
