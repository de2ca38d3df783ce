package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
)

// fakeStore keeps invoices and payments in memory so the engine's
// transactional paths run without a database.
type fakeStore struct {
	invoices map[string]*models.Invoice
	payments map[string][]*models.Payment
	inserted []*models.Payment
	saves    int
}

func newFakeStore(invoices ...*models.Invoice) *fakeStore {
	f := &fakeStore{
		invoices: make(map[string]*models.Invoice),
		payments: make(map[string][]*models.Payment),
	}
	for _, inv := range invoices {
		f.invoices[inv.ID] = inv
	}
	return f
}

func (f *fakeStore) GetInvoiceForUpdate(_ database.Queryer, id string) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return inv, nil
}

func (f *fakeStore) ListInvoicePayments(_ database.Queryer, invoiceID string) ([]*models.Payment, error) {
	return f.payments[invoiceID], nil
}

func (f *fakeStore) InsertPayment(_ database.Queryer, p *models.Payment) error {
	p.ID = fmt.Sprintf("pay-%d", len(f.inserted)+1)
	f.inserted = append(f.inserted, p)
	if p.InvoiceID != nil {
		f.payments[*p.InvoiceID] = append(f.payments[*p.InvoiceID], p)
	}
	return nil
}

func (f *fakeStore) SaveReconciliation(_ database.Queryer, inv *models.Invoice) error {
	f.saves++
	inv.Version++
	return nil
}

func (f *fakeStore) NextInvoiceNumber(_ database.Queryer, year int) (string, error) {
	return fmt.Sprintf("INV-%d-0001", year), nil
}

func (f *fakeStore) InsertInvoice(_ database.Queryer, inv *models.Invoice) error {
	inv.ID = fmt.Sprintf("inv-%d", len(f.invoices)+1)
	inv.Version = 1
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeStore) InsertInvoiceItem(_ database.Queryer, item *models.InvoiceItem) error {
	return nil
}

func (f *fakeStore) DeleteInvoiceItems(_ database.Queryer, invoiceID string) error {
	return nil
}

func (f *fakeStore) UpdateInvoiceHeader(_ database.Queryer, inv *models.Invoice) error {
	inv.Version++
	return nil
}

func (f *fakeStore) DeleteInvoice(_ database.Queryer, id string) error {
	if _, ok := f.invoices[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeStore) UpdatePaymentStatus(_ database.Queryer, id string, status models.PaymentStatus) (*models.Payment, error) {
	for _, ps := range f.payments {
		for _, p := range ps {
			if p.ID == id {
				p.Status = status
				return p, nil
			}
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeStore) ListOpenInvoicesPastDue(_ database.Queryer, today time.Time) ([]string, error) {
	var ids []string
	for id, inv := range f.invoices {
		if inv.DueDate.Before(today) &&
			(inv.Status == models.InvoiceOutstanding || inv.Status == models.InvoicePartiallyPaid) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func newTestEngine(store *fakeStore) *InvoiceService {
	s := &InvoiceService{store: store, log: zerolog.Nop(), now: func() time.Time { return today }}
	s.runTx = func(ctx context.Context, fn func(q database.Queryer) error) error {
		return fn(nil)
	}
	return s
}

func openInvoice(id string, total string, due time.Time) *models.Invoice {
	return &models.Invoice{
		ID:            id,
		InvoiceNumber: "INV-2026-0042",
		IssueDate:     lastWeek,
		DueDate:       due,
		StudentID:     "student-1",
		ParentID:      "parent-1",
		TotalAmount:   money(total),
		AmountPaid:    decimal.Zero,
		Status:        models.InvoiceOutstanding,
		Version:       1,
	}
}

func TestRecordPaymentReconcilesInvoice(t *testing.T) {
	store := newFakeStore(openInvoice("inv-1", "500", tomorrow))
	engine := newTestEngine(store)

	payment, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
		Amount: money("200"),
		Method: "cash",
		Status: models.PaymentCompleted,
	})
	require.NoError(t, err)

	// The payment carries the invoice's family links so its history
	// survives invoice deletion.
	assert.Equal(t, "student-1", payment.StudentID)
	assert.Equal(t, "parent-1", payment.ParentID)
	require.NotNil(t, payment.TransactionID)
	assert.NotEmpty(t, *payment.TransactionID)

	inv := store.invoices["inv-1"]
	assert.True(t, money("200").Equal(inv.AmountPaid))
	assert.Equal(t, models.InvoicePartiallyPaid, inv.Status)
	assert.Equal(t, 1, store.saves)
}

func TestRecordPaymentFullAmountSettles(t *testing.T) {
	store := newFakeStore(openInvoice("inv-1", "500", tomorrow))
	engine := newTestEngine(store)

	_, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
		Amount: money("500"),
		Status: models.PaymentCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, store.invoices["inv-1"].Status)
}

func TestRecordPaymentIgnoresUncountedPayments(t *testing.T) {
	inv := openInvoice("inv-1", "500", tomorrow)
	store := newFakeStore(inv)
	store.payments["inv-1"] = []*models.Payment{
		{ID: "pay-old", InvoiceID: &inv.ID, Amount: money("100"), Status: models.PaymentPending},
	}
	engine := newTestEngine(store)

	_, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
		Amount: money("200"),
		Status: models.PaymentCompleted,
	})
	require.NoError(t, err)

	// Only the completed payment counts; the pending one stays on record
	// without reducing the balance.
	assert.True(t, money("200").Equal(inv.AmountPaid))
	assert.Equal(t, models.InvoicePartiallyPaid, inv.Status)
}

func TestRecordPaymentRejectedOnPaidInvoice(t *testing.T) {
	inv := openInvoice("inv-1", "500", tomorrow)
	inv.AmountPaid = money("500")
	inv.Status = models.InvoicePaid
	store := newFakeStore(inv)
	engine := newTestEngine(store)

	_, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
		Amount: money("50"),
		Status: models.PaymentCompleted,
	})
	assert.ErrorIs(t, err, database.ErrInvoiceSettled)

	// A rejected payment leaves no payment row and no reconciliation.
	assert.Empty(t, store.inserted)
	assert.Zero(t, store.saves)
}

func TestRecordPaymentRejectedOnWaivedInvoice(t *testing.T) {
	inv := openInvoice("inv-1", "500", tomorrow)
	inv.Status = models.InvoiceWaived
	store := newFakeStore(inv)
	engine := newTestEngine(store)

	_, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
		Amount: money("50"),
		Status: models.PaymentCompleted,
	})
	assert.ErrorIs(t, err, database.ErrInvoiceSettled)
	assert.Empty(t, store.inserted)
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	store := newFakeStore(openInvoice("inv-1", "500", tomorrow))
	engine := newTestEngine(store)

	for _, amount := range []decimal.Decimal{decimal.Zero, money("-10")} {
		_, err := engine.RecordPayment(context.Background(), "inv-1", RecordPaymentInput{
			Amount: amount,
			Status: models.PaymentCompleted,
		})
		var verr *database.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, store.inserted)
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	engine := newTestEngine(newFakeStore())
	_, err := engine.RecordPayment(context.Background(), "missing", RecordPaymentInput{
		Amount: money("50"),
		Status: models.PaymentCompleted,
	})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRecomputeFlipsOverdue(t *testing.T) {
	store := newFakeStore(openInvoice("inv-1", "500", lastWeek))
	engine := newTestEngine(store)

	inv, err := engine.Recompute(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceOverdue, inv.Status)
}

func TestSetPaymentStatusRefundRestatesInvoice(t *testing.T) {
	inv := openInvoice("inv-1", "500", tomorrow)
	inv.AmountPaid = money("500")
	inv.Status = models.InvoicePaid
	store := newFakeStore(inv)
	store.payments["inv-1"] = []*models.Payment{
		{ID: "pay-1", InvoiceID: &inv.ID, Amount: money("500"), Status: models.PaymentCompleted},
	}
	engine := newTestEngine(store)

	payment, err := engine.SetPaymentStatus(context.Background(), "pay-1", models.PaymentRefunded)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, payment.Status)

	// The refunded payment no longer counts, so the invoice reopens.
	assert.True(t, decimal.Zero.Equal(inv.AmountPaid))
	assert.Equal(t, models.InvoiceOutstanding, inv.Status)
}

func TestWaiveThenUnwaiveRecomputes(t *testing.T) {
	inv := openInvoice("inv-1", "500", tomorrow)
	store := newFakeStore(inv)
	store.payments["inv-1"] = []*models.Payment{
		{ID: "pay-1", InvoiceID: &inv.ID, Amount: money("200"), Status: models.PaymentCompleted},
	}
	engine := newTestEngine(store)

	waived, err := engine.Waive(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceWaived, waived.Status)

	restored, err := engine.Unwaive(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePartiallyPaid, restored.Status)
	assert.True(t, money("200").Equal(restored.AmountPaid))
}

func TestUnwaiveRejectedWhenNotWaived(t *testing.T) {
	store := newFakeStore(openInvoice("inv-1", "500", tomorrow))
	engine := newTestEngine(store)

	_, err := engine.Unwaive(context.Background(), "inv-1")
	assert.ErrorIs(t, err, database.ErrConflict)
}

func TestSweepOverdueFlipsOnlyPastDueInvoices(t *testing.T) {
	pastDue := openInvoice("inv-1", "500", lastWeek)
	current := openInvoice("inv-2", "500", tomorrow)
	store := newFakeStore(pastDue, current)
	engine := newTestEngine(store)

	engine.SweepOverdue(context.Background())

	assert.Equal(t, models.InvoiceOverdue, pastDue.Status)
	assert.Equal(t, models.InvoiceOutstanding, current.Status)
}
