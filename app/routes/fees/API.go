package fees

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

// --- Fee types ---

func GetFeeTypesAPI(c *fiber.Ctx, db *sql.DB) error {
	types, err := database.ListFeeTypes(db, c.QueryBool("active_only", false))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": types, "count": len(types)})
}

func GetFeeTypeByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	ft, err := database.GetFeeTypeByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

type feeTypeRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func CreateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req feeTypeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	ft := &models.FeeType{Name: req.Name, Description: req.Description}
	if err := database.CreateFeeType(db, ft); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": ft})
}

func UpdateFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	var req feeTypeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	ft, err := database.GetFeeTypeByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	ft.Name = req.Name
	ft.Description = req.Description
	if req.IsActive != nil {
		ft.IsActive = *req.IsActive
	}
	if err := database.UpdateFeeType(db, ft); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": ft})
}

// DeleteFeeTypeAPI removes a fee type. Rejected while invoice items,
// class fees or student fees still reference it; retire with
// is_active=false instead.
func DeleteFeeTypeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteFeeType(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "fee type deleted"})
}

// --- Class fees ---

func GetClassFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	fees, err := database.ListClassFees(db, c.Query("class_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fees, "count": len(fees)})
}

func CreateClassFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type classFeeRequest struct {
		ClassID       string          `json:"class_id" validate:"required,uuid"`
		FeeTypeID     string          `json:"fee_type_id" validate:"required,uuid"`
		Amount        decimal.Decimal `json:"amount" validate:"required"`
		EffectiveDate string          `json:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	}
	var req classFeeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	cf := &models.ClassFee{
		ClassID:   req.ClassID,
		FeeTypeID: req.FeeTypeID,
		Amount:    req.Amount,
	}
	if req.EffectiveDate != "" {
		if date, err := time.Parse("2006-01-02", req.EffectiveDate); err == nil {
			cf.EffectiveDate = date
		}
	}
	if err := database.CreateClassFee(db, cf); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cf})
}

func UpdateClassFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type classFeeUpdate struct {
		Amount        decimal.Decimal `json:"amount" validate:"required"`
		EffectiveDate string          `json:"effective_date" validate:"omitempty,datetime=2006-01-02"`
	}
	var req classFeeUpdate
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	cf, err := database.GetClassFeeByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	cf.Amount = req.Amount
	if req.EffectiveDate != "" {
		if date, err := time.Parse("2006-01-02", req.EffectiveDate); err == nil {
			cf.EffectiveDate = date
		}
	}
	if err := database.UpdateClassFee(db, cf); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cf})
}

func DeleteClassFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteClassFee(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "class fee deleted"})
}

// --- Student fees ---

func GetStudentFeesAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Query("student_id")
	caller := auth.CallerFrom(c)
	if !caller.IsStaff() {
		if studentID == "" || !caller.CanViewStudentRecords(studentID) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
	}

	fees, err := database.ListStudentFees(db, studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fees, "count": len(fees)})
}

func CreateStudentFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	type studentFeeRequest struct {
		StudentID string          `json:"student_id" validate:"required,uuid"`
		FeeTypeID string          `json:"fee_type_id" validate:"required,uuid"`
		Amount    decimal.Decimal `json:"amount" validate:"required"`
		DueDate   string          `json:"due_date" validate:"required,datetime=2006-01-02"`
		Notes     *string         `json:"notes"`
	}
	var req studentFeeRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	dueDate, _ := time.Parse("2006-01-02", req.DueDate)
	sf := &models.StudentFee{
		StudentID: req.StudentID,
		FeeTypeID: req.FeeTypeID,
		Amount:    req.Amount,
		DueDate:   dueDate,
		Notes:     req.Notes,
	}
	if err := database.CreateStudentFee(db, sf); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": sf})
}

func DeleteStudentFeeAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteStudentFee(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "student fee deleted"})
}
