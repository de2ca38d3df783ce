package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
)

// invoiceStore is the persistence seam of the engine. The production
// implementation delegates to the database query helpers; tests swap in
// an in-memory store.
type invoiceStore interface {
	GetInvoiceForUpdate(q database.Queryer, id string) (*models.Invoice, error)
	ListInvoicePayments(q database.Queryer, invoiceID string) ([]*models.Payment, error)
	InsertPayment(q database.Queryer, p *models.Payment) error
	SaveReconciliation(q database.Queryer, inv *models.Invoice) error
	NextInvoiceNumber(q database.Queryer, year int) (string, error)
	InsertInvoice(q database.Queryer, inv *models.Invoice) error
	InsertInvoiceItem(q database.Queryer, item *models.InvoiceItem) error
	DeleteInvoiceItems(q database.Queryer, invoiceID string) error
	UpdateInvoiceHeader(q database.Queryer, inv *models.Invoice) error
	DeleteInvoice(q database.Queryer, id string) error
	UpdatePaymentStatus(q database.Queryer, id string, status models.PaymentStatus) (*models.Payment, error)
	ListOpenInvoicesPastDue(q database.Queryer, today time.Time) ([]string, error)
}

type sqlStore struct{}

func (sqlStore) GetInvoiceForUpdate(q database.Queryer, id string) (*models.Invoice, error) {
	return database.GetInvoiceForUpdate(q, id)
}
func (sqlStore) ListInvoicePayments(q database.Queryer, invoiceID string) ([]*models.Payment, error) {
	return database.ListInvoicePayments(q, invoiceID)
}
func (sqlStore) InsertPayment(q database.Queryer, p *models.Payment) error {
	return database.InsertPayment(q, p)
}
func (sqlStore) SaveReconciliation(q database.Queryer, inv *models.Invoice) error {
	return database.SaveReconciliation(q, inv)
}
func (sqlStore) NextInvoiceNumber(q database.Queryer, year int) (string, error) {
	return database.NextInvoiceNumber(q, year)
}
func (sqlStore) InsertInvoice(q database.Queryer, inv *models.Invoice) error {
	return database.InsertInvoice(q, inv)
}
func (sqlStore) InsertInvoiceItem(q database.Queryer, item *models.InvoiceItem) error {
	return database.InsertInvoiceItem(q, item)
}
func (sqlStore) DeleteInvoiceItems(q database.Queryer, invoiceID string) error {
	return database.DeleteInvoiceItems(q, invoiceID)
}
func (sqlStore) UpdateInvoiceHeader(q database.Queryer, inv *models.Invoice) error {
	return database.UpdateInvoiceHeader(q, inv)
}
func (sqlStore) DeleteInvoice(q database.Queryer, id string) error {
	return database.DeleteInvoice(q, id)
}
func (sqlStore) UpdatePaymentStatus(q database.Queryer, id string, status models.PaymentStatus) (*models.Payment, error) {
	return database.UpdatePaymentStatus(q, id, status)
}
func (sqlStore) ListOpenInvoicesPastDue(q database.Queryer, today time.Time) ([]string, error) {
	return database.ListOpenInvoicesPastDue(q, today)
}

// InvoiceService keeps invoice amount-paid and status consistent with
// the recorded payments and due dates. Every mutation runs in a single
// transaction: the payment set is read under a row lock and the derived
// fields are written back with an optimistic version check, so two
// concurrent writers cannot commit against the same snapshot.
type InvoiceService struct {
	db    *sql.DB
	store invoiceStore
	log   zerolog.Logger
	now   func() time.Time
	runTx func(ctx context.Context, fn func(q database.Queryer) error) error
}

// NewInvoiceService builds the reconciliation engine over the shared pool.
func NewInvoiceService(db *sql.DB, log zerolog.Logger) *InvoiceService {
	s := &InvoiceService{db: db, store: sqlStore{}, log: log, now: time.Now}
	s.runTx = s.sqlTx
	return s
}

func (s *InvoiceService) sqlTx(ctx context.Context, fn func(q database.Queryer) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// SumCounted sums the payments that count toward an invoice's amount
// paid. Only completed payments count: pending, failed and refunded
// payments stay on record but do not reduce the balance.
func SumCounted(payments []*models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Counted() {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ReconcileStatus derives an invoice status from its totals and due
// date. Precedence: paid, then partially paid, then outstanding, with an
// overdue override for unpaid invoices past their due date. A waived
// invoice is never restated; clearing the waiver is an explicit
// administrative action.
func ReconcileStatus(total, paid decimal.Decimal, dueDate time.Time, current models.InvoiceStatus, today time.Time) models.InvoiceStatus {
	if current == models.InvoiceWaived {
		return models.InvoiceWaived
	}

	status := models.InvoiceOutstanding
	switch {
	case total.Sub(paid).LessThanOrEqual(decimal.Zero):
		status = models.InvoicePaid
	case paid.GreaterThan(decimal.Zero):
		status = models.InvoicePartiallyPaid
	}

	if status != models.InvoicePaid && startOfDay(dueDate).Before(startOfDay(today)) {
		status = models.InvoiceOverdue
	}
	return status
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RecordPaymentInput carries one payment entry. The engine checks that
// the amount is positive and the invoice is still open; the calling
// orchestrator is responsible for checking the amount against the
// remaining balance before invoking RecordPayment.
type RecordPaymentInput struct {
	Amount        decimal.Decimal
	Method        string
	PaymentDate   time.Time
	Notes         *string
	TransactionID *string
	Status        models.PaymentStatus
}

// RecordPayment creates a payment against an invoice and reconciles the
// invoice in the same transaction. Fails with ErrNotFound when the
// invoice does not exist and ErrInvoiceSettled when it is already paid
// or waived; a rejected payment leaves no payment row behind.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID string, in RecordPaymentInput) (*models.Payment, error) {
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, database.NewValidationError("amount", "must be greater than zero")
	}

	var inv *models.Invoice
	var payment *models.Payment
	err := s.runTx(ctx, func(q database.Queryer) error {
		var err error
		if inv, err = s.store.GetInvoiceForUpdate(q, invoiceID); err != nil {
			return err
		}
		if inv.Status.Settled() {
			return database.ErrInvoiceSettled
		}

		if in.TransactionID == nil {
			// Every payment gets a receipt reference, quotable by payers.
			ref := uuid.NewString()
			in.TransactionID = &ref
		}

		payment = &models.Payment{
			InvoiceID:     &inv.ID,
			StudentID:     inv.StudentID,
			ParentID:      inv.ParentID,
			Amount:        in.Amount,
			PaymentDate:   in.PaymentDate,
			Method:        in.Method,
			Status:        in.Status,
			TransactionID: in.TransactionID,
			Notes:         in.Notes,
		}
		if err := s.store.InsertPayment(q, payment); err != nil {
			return err
		}
		return s.reconcile(q, inv)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("invoice", inv.InvoiceNumber).
		Str("payment_id", payment.ID).
		Str("amount", in.Amount.StringFixed(2)).
		Str("status", string(inv.Status)).
		Msg("payment recorded")
	return payment, nil
}

// Recompute reruns the status machine for an invoice, reloading its
// payments. Invoked after item edits and by the overdue sweep;
// recomputing with no intervening writes is a no-op on the outcome.
func (s *InvoiceService) Recompute(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.runTx(ctx, func(q database.Queryer) error {
		var err error
		if inv, err = s.store.GetInvoiceForUpdate(q, invoiceID); err != nil {
			return err
		}
		return s.reconcile(q, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// reconcile recomputes amount paid from the payment set and the status
// from the state machine, then persists both. Must run inside the
// transaction that loaded the invoice.
func (s *InvoiceService) reconcile(q database.Queryer, inv *models.Invoice) error {
	payments, err := s.store.ListInvoicePayments(q, inv.ID)
	if err != nil {
		return err
	}
	inv.AmountPaid = SumCounted(payments)
	inv.Status = ReconcileStatus(inv.TotalAmount, inv.AmountPaid, inv.DueDate, inv.Status, s.now())
	return s.store.SaveReconciliation(q, inv)
}

// InvoiceItemInput is one line of an invoice being created or edited.
type InvoiceItemInput struct {
	FeeTypeID   string
	Description string
	Amount      decimal.Decimal
}

// InvoiceInput carries the editable fields of an invoice.
type InvoiceInput struct {
	InvoiceNumber string
	StudentID     string
	ParentID      string
	IssueDate     time.Time
	DueDate       time.Time
	Notes         *string
	Items         []InvoiceItemInput
}

func validateItems(items []InvoiceItemInput) error {
	if len(items) == 0 {
		return database.NewValidationError("items", "at least one line item is required")
	}
	for _, item := range items {
		if item.FeeTypeID == "" {
			return database.NewValidationError("fee_type_id", "is required")
		}
		if item.Description == "" {
			return database.NewValidationError("description", "is required")
		}
		if !item.Amount.GreaterThan(decimal.Zero) {
			return database.NewValidationError("amount", "must be greater than zero")
		}
	}
	return nil
}

// CreateInvoice writes a new invoice with its line items. The total is
// the sum of the items; the invoice starts outstanding with nothing
// paid. An invoice number is allocated when none is supplied.
func (s *InvoiceService) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	if in.StudentID == "" {
		return nil, database.NewValidationError("student_id", "is required")
	}
	if in.ParentID == "" {
		// Every invoice has a responsible parent.
		return nil, database.NewValidationError("parent_id", "is required")
	}
	if in.DueDate.IsZero() {
		return nil, database.NewValidationError("due_date", "is required")
	}
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	var inv *models.Invoice
	err := s.runTx(ctx, func(q database.Queryer) error {
		number := in.InvoiceNumber
		if number == "" {
			var err error
			if number, err = s.store.NextInvoiceNumber(q, s.now().Year()); err != nil {
				return err
			}
		}

		total := decimal.Zero
		for _, item := range in.Items {
			total = total.Add(item.Amount)
		}

		inv = &models.Invoice{
			InvoiceNumber: number,
			IssueDate:     in.IssueDate,
			DueDate:       in.DueDate,
			StudentID:     in.StudentID,
			ParentID:      in.ParentID,
			TotalAmount:   total,
			Notes:         in.Notes,
			Status:        ReconcileStatus(total, decimal.Zero, in.DueDate, models.InvoiceOutstanding, s.now()),
		}
		if err := s.store.InsertInvoice(q, inv); err != nil {
			return err
		}
		for _, item := range in.Items {
			line := &models.InvoiceItem{
				InvoiceID:   inv.ID,
				FeeTypeID:   item.FeeTypeID,
				Description: item.Description,
				Amount:      item.Amount,
			}
			if err := s.store.InsertInvoiceItem(q, line); err != nil {
				return err
			}
			inv.Items = append(inv.Items, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("invoice", inv.InvoiceNumber).Str("total", inv.TotalAmount.StringFixed(2)).Msg("invoice created")
	return inv, nil
}

// UpdateInvoice rewrites an invoice's header and line items, recomputes
// the total from the items and reconciles the status, all in one
// transaction. A concurrent edit surfaces as ErrConflict.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, in InvoiceInput) (*models.Invoice, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	var inv *models.Invoice
	err := s.runTx(ctx, func(q database.Queryer) error {
		var err error
		if inv, err = s.store.GetInvoiceForUpdate(q, invoiceID); err != nil {
			return err
		}

		if in.InvoiceNumber != "" {
			inv.InvoiceNumber = in.InvoiceNumber
		}
		if !in.IssueDate.IsZero() {
			inv.IssueDate = in.IssueDate
		}
		if !in.DueDate.IsZero() {
			inv.DueDate = in.DueDate
		}
		if in.StudentID != "" {
			inv.StudentID = in.StudentID
		}
		if in.ParentID != "" {
			inv.ParentID = in.ParentID
		}
		inv.Notes = in.Notes

		if err := s.store.UpdateInvoiceHeader(q, inv); err != nil {
			return err
		}

		if err := s.store.DeleteInvoiceItems(q, inv.ID); err != nil {
			return err
		}
		total := decimal.Zero
		inv.Items = nil
		for _, item := range in.Items {
			line := &models.InvoiceItem{
				InvoiceID:   inv.ID,
				FeeTypeID:   item.FeeTypeID,
				Description: item.Description,
				Amount:      item.Amount,
			}
			if err := s.store.InsertInvoiceItem(q, line); err != nil {
				return err
			}
			inv.Items = append(inv.Items, line)
			total = total.Add(item.Amount)
		}
		inv.TotalAmount = total

		return s.reconcile(q, inv)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Waive administratively closes an invoice: no further balance is owed
// regardless of payment totals. Waived is sticky; reconciliation never
// clears it.
func (s *InvoiceService) Waive(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return s.setWaived(ctx, invoiceID, true)
}

// Unwaive clears the administrative override and recomputes the status
// from the payment record.
func (s *InvoiceService) Unwaive(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	return s.setWaived(ctx, invoiceID, false)
}

func (s *InvoiceService) setWaived(ctx context.Context, invoiceID string, waived bool) (*models.Invoice, error) {
	var inv *models.Invoice
	err := s.runTx(ctx, func(q database.Queryer) error {
		var err error
		if inv, err = s.store.GetInvoiceForUpdate(q, invoiceID); err != nil {
			return err
		}

		if waived {
			inv.Status = models.InvoiceWaived
			return s.store.SaveReconciliation(q, inv)
		}
		if inv.Status != models.InvoiceWaived {
			return database.ErrConflict
		}
		inv.Status = models.InvoiceOutstanding
		return s.reconcile(q, inv)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("invoice", inv.InvoiceNumber).Bool("waived", waived).Msg("invoice waiver changed")
	return inv, nil
}

// DeleteInvoice removes an invoice. Line items cascade; linked payments
// keep their history with the invoice reference cleared.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.runTx(ctx, func(q database.Queryer) error {
		return s.store.DeleteInvoice(q, invoiceID)
	})
}

// SetPaymentStatus moves a payment between pending/completed/failed/
// refunded and reconciles the linked invoice, since a status change can
// change what counts toward the balance.
func (s *InvoiceService) SetPaymentStatus(ctx context.Context, paymentID string, status models.PaymentStatus) (*models.Payment, error) {
	var payment *models.Payment
	err := s.runTx(ctx, func(q database.Queryer) error {
		var err error
		if payment, err = s.store.UpdatePaymentStatus(q, paymentID, status); err != nil {
			return err
		}

		if payment.InvoiceID != nil {
			inv, err := s.store.GetInvoiceForUpdate(q, *payment.InvoiceID)
			if err != nil {
				return err
			}
			return s.reconcile(q, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
