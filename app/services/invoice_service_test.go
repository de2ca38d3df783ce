package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"oakridge-academy/app/models"
)

var (
	today    = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow = today.AddDate(0, 0, 1)
	lastWeek = today.AddDate(0, 0, -7)
)

func money(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReconcileStatusPartialPayment(t *testing.T) {
	status := ReconcileStatus(money("500"), money("200"), tomorrow, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoicePartiallyPaid, status)
}

func TestReconcileStatusFullPayment(t *testing.T) {
	status := ReconcileStatus(money("500"), money("500"), tomorrow, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoicePaid, status)
}

func TestReconcileStatusNothingPaid(t *testing.T) {
	status := ReconcileStatus(money("500"), decimal.Zero, tomorrow, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoiceOutstanding, status)
}

func TestReconcileStatusOverdueOverridesOutstanding(t *testing.T) {
	status := ReconcileStatus(money("500"), decimal.Zero, lastWeek, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoiceOverdue, status)
}

func TestReconcileStatusOverdueOverridesPartiallyPaid(t *testing.T) {
	status := ReconcileStatus(money("500"), money("100"), lastWeek, models.InvoicePartiallyPaid, today)
	assert.Equal(t, models.InvoiceOverdue, status)
}

func TestReconcileStatusPaidBeatsOverdue(t *testing.T) {
	// A fully paid invoice is never flipped to overdue, even past due.
	status := ReconcileStatus(money("500"), money("500"), lastWeek, models.InvoiceOverdue, today)
	assert.Equal(t, models.InvoicePaid, status)
}

func TestReconcileStatusDueTodayIsNotOverdue(t *testing.T) {
	dueEarlierToday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	status := ReconcileStatus(money("500"), decimal.Zero, dueEarlierToday, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoiceOutstanding, status)
}

func TestReconcileStatusOverpaymentStillPaid(t *testing.T) {
	status := ReconcileStatus(money("500"), money("600"), tomorrow, models.InvoicePartiallyPaid, today)
	assert.Equal(t, models.InvoicePaid, status)
}

func TestReconcileStatusWaivedIsSticky(t *testing.T) {
	// Payments and due dates never restate a waived invoice.
	for _, paid := range []decimal.Decimal{decimal.Zero, money("200"), money("500")} {
		status := ReconcileStatus(money("500"), paid, lastWeek, models.InvoiceWaived, today)
		assert.Equal(t, models.InvoiceWaived, status)
	}
}

func TestReconcileStatusZeroTotalIsPaid(t *testing.T) {
	status := ReconcileStatus(decimal.Zero, decimal.Zero, tomorrow, models.InvoiceOutstanding, today)
	assert.Equal(t, models.InvoicePaid, status)
}

func TestReconcileStatusIdempotent(t *testing.T) {
	first := ReconcileStatus(money("500"), money("200"), lastWeek, models.InvoiceOutstanding, today)
	second := ReconcileStatus(money("500"), money("200"), lastWeek, first, today)
	assert.Equal(t, first, second)
}

func TestSumCountedOnlyCompletedPayments(t *testing.T) {
	payments := []*models.Payment{
		{Amount: money("100"), Status: models.PaymentCompleted},
		{Amount: money("50"), Status: models.PaymentPending},
		{Amount: money("75"), Status: models.PaymentFailed},
		{Amount: money("25"), Status: models.PaymentRefunded},
		{Amount: money("200"), Status: models.PaymentCompleted},
	}
	assert.True(t, money("300").Equal(SumCounted(payments)))
}

func TestSumCountedEmpty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(SumCounted(nil)))
}

func TestValidateItems(t *testing.T) {
	valid := []InvoiceItemInput{{FeeTypeID: "f1", Description: "Tuition", Amount: money("100")}}
	assert.NoError(t, validateItems(valid))

	assert.Error(t, validateItems(nil))
	assert.Error(t, validateItems([]InvoiceItemInput{{FeeTypeID: "", Description: "x", Amount: money("1")}}))
	assert.Error(t, validateItems([]InvoiceItemInput{{FeeTypeID: "f1", Description: "", Amount: money("1")}}))
	assert.Error(t, validateItems([]InvoiceItemInput{{FeeTypeID: "f1", Description: "x", Amount: decimal.Zero}}))
	assert.Error(t, validateItems([]InvoiceItemInput{{FeeTypeID: "f1", Description: "x", Amount: money("-5")}}))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), startOfDay(ts))
}

func TestSettledStatuses(t *testing.T) {
	assert.True(t, models.InvoicePaid.Settled())
	assert.True(t, models.InvoiceWaived.Settled())
	assert.False(t, models.InvoiceOutstanding.Settled())
	assert.False(t, models.InvoicePartiallyPaid.Settled())
	assert.False(t, models.InvoiceOverdue.Settled())
}
