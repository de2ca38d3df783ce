package invoices

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/policy"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
	"oakridge-academy/app/services"
)

// scopeInvoiceFilters pins a non-admin caller's listing to their own
// family. A parent or student role without a linked profile row has no
// family to scope to and is rejected, never given the unfiltered list.
func scopeInvoiceFilters(caller policy.Caller, f *database.InvoiceFilters) error {
	switch {
	case caller.IsAdmin():
	case caller.Is(models.RoleParent) && caller.ParentID != "":
		f.ParentID = caller.ParentID
	case caller.Is(models.RoleStudent) && caller.StudentID != "":
		f.StudentID = caller.StudentID
	default:
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
	return nil
}

func scopePaymentFilters(caller policy.Caller, f *database.PaymentFilters) error {
	switch {
	case caller.IsAdmin():
	case caller.Is(models.RoleParent) && caller.ParentID != "":
		f.ParentID = caller.ParentID
	case caller.Is(models.RoleStudent) && caller.StudentID != "":
		f.StudentID = caller.StudentID
	default:
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
	return nil
}

func GetInvoicesAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.InvoiceFilters{
		StudentID: c.Query("student_id"),
		ParentID:  c.Query("parent_id"),
		Status:    c.Query("status"),
	}
	if err := scopeInvoiceFilters(auth.CallerFrom(c), &filters); err != nil {
		return err
	}

	invoices, err := database.ListInvoices(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": invoices, "count": len(invoices)})
}

func GetInvoiceByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	inv, err := database.GetInvoiceDetails(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !auth.CallerFrom(c).CanViewInvoice(inv) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"data":        inv,
		"balance_due": inv.BalanceDue(),
	})
}

type invoiceItemRequest struct {
	FeeTypeID   string          `json:"fee_type_id" validate:"required,uuid"`
	Description string          `json:"description" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
}

type invoiceRequest struct {
	InvoiceNumber string               `json:"invoice_number"`
	StudentID     string               `json:"student_id" validate:"required,uuid"`
	ParentID      string               `json:"parent_id" validate:"required,uuid"`
	IssueDate     string               `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate       string               `json:"due_date" validate:"required,datetime=2006-01-02"`
	Notes         *string              `json:"notes"`
	Items         []invoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r *invoiceRequest) toInput() services.InvoiceInput {
	in := services.InvoiceInput{
		InvoiceNumber: r.InvoiceNumber,
		StudentID:     r.StudentID,
		ParentID:      r.ParentID,
		Notes:         r.Notes,
	}
	if r.IssueDate != "" {
		if date, err := time.Parse("2006-01-02", r.IssueDate); err == nil {
			in.IssueDate = date
		}
	}
	if date, err := time.Parse("2006-01-02", r.DueDate); err == nil {
		in.DueDate = date
	}
	for _, item := range r.Items {
		in.Items = append(in.Items, services.InvoiceItemInput{
			FeeTypeID:   item.FeeTypeID,
			Description: item.Description,
			Amount:      item.Amount,
		})
	}
	return in
}

func CreateInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	var req invoiceRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	inv, err := engine.CreateInvoice(c.Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": inv})
}

func UpdateInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	var req invoiceRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	inv, err := engine.UpdateInvoice(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inv})
}

func DeleteInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	if err := engine.DeleteInvoice(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "invoice deleted"})
}

// RecordPaymentAPI records a payment against an invoice. Parents may pay
// their own family's invoices; admin can record payments anywhere. The
// amount must not exceed the remaining balance.
func RecordPaymentAPI(c *fiber.Ctx, db *sql.DB, engine *services.InvoiceService) error {
	type paymentRequest struct {
		Amount        decimal.Decimal `json:"amount" validate:"required"`
		Method        string          `json:"method" validate:"omitempty,oneof=cash bank_transfer mobile_money card cheque"`
		PaymentDate   string          `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
		TransactionID *string         `json:"transaction_id"`
		Notes         *string         `json:"notes"`
	}
	var req paymentRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	inv, err := database.GetInvoiceByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	caller := auth.CallerFrom(c)
	if !caller.CanPayInvoice(inv) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
	if req.Amount.GreaterThan(inv.BalanceDue()) {
		return fiber.NewError(fiber.StatusBadRequest, "amount exceeds the remaining balance")
	}

	in := services.RecordPaymentInput{
		Amount:        req.Amount,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
		Status:        models.PaymentCompleted,
	}
	if req.PaymentDate != "" {
		if date, err := time.Parse("2006-01-02", req.PaymentDate); err == nil {
			in.PaymentDate = date
		}
	}

	payment, err := engine.RecordPayment(c.Context(), inv.ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payment})
}

func WaiveInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	inv, err := engine.Waive(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inv})
}

func UnwaiveInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	inv, err := engine.Unwaive(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inv})
}

func RecomputeInvoiceAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	inv, err := engine.Recompute(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": inv})
}

// --- Payments ---

func GetPaymentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.PaymentFilters{
		StudentID: c.Query("student_id"),
		ParentID:  c.Query("parent_id"),
		Status:    c.Query("status"),
	}
	if err := scopePaymentFilters(auth.CallerFrom(c), &filters); err != nil {
		return err
	}

	payments, err := database.ListPayments(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": payments, "count": len(payments)})
}

func GetPaymentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	payment, err := database.GetPaymentByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !auth.CallerFrom(c).CanViewPayment(payment) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}

// UpdatePaymentStatusAPI moves a payment between statuses and reconciles
// the linked invoice, since completed is the only status that counts
// toward the balance.
func UpdatePaymentStatusAPI(c *fiber.Ctx, engine *services.InvoiceService) error {
	type statusRequest struct {
		Status string `json:"status" validate:"required,oneof=pending completed failed refunded"`
	}
	var req statusRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	payment, err := engine.SetPaymentStatus(c.Context(), c.Params("id"), models.PaymentStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": payment})
}
