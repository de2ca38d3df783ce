package enrollments

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetEnrollmentsAPI(c *fiber.Ctx, db *sql.DB) error {
	caller := auth.CallerFrom(c)
	filters := database.EnrollmentFilters{
		StudentID: c.Query("student_id"),
		ClassID:   c.Query("class_id"),
		SubjectID: c.Query("subject_id"),
		Status:    c.Query("status"),
	}

	// Students and parents only see their own family's enrollments.
	if !caller.IsStaff() {
		if filters.StudentID == "" || !caller.CanViewStudentRecords(filters.StudentID) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
	}

	enrollments, err := database.ListEnrollments(db, filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": enrollments, "count": len(enrollments)})
}

func CreateEnrollmentAPI(c *fiber.Ctx, db *sql.DB) error {
	type enrollRequest struct {
		StudentID      string `json:"student_id" validate:"required,uuid"`
		ClassID        string `json:"class_id" validate:"required,uuid"`
		SubjectID      string `json:"subject_id" validate:"required,uuid"`
		EnrollmentDate string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	}
	var req enrollRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		SubjectID: req.SubjectID,
	}
	if req.EnrollmentDate != "" {
		if date, err := time.Parse("2006-01-02", req.EnrollmentDate); err == nil {
			enrollment.EnrollmentDate = date
		}
	}
	if err := database.CreateEnrollment(db, enrollment); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": enrollment})
}

func UpdateEnrollmentStatusAPI(c *fiber.Ctx, db *sql.DB) error {
	type statusRequest struct {
		Status string `json:"status" validate:"required,oneof=active completed withdrawn"`
	}
	var req statusRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	if err := database.UpdateEnrollmentStatus(db, c.Params("id"), models.EnrollmentStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "enrollment updated"})
}

func DeleteEnrollmentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteEnrollment(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "enrollment deleted"})
}
