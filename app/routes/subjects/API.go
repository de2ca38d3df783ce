package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/requests"
)

func GetSubjectsAPI(c *fiber.Ctx, db *sql.DB) error {
	subjects, err := database.ListSubjects(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": subjects, "count": len(subjects)})
}

func GetSubjectByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	subject, err := database.GetSubjectByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": subject})
}

type subjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code" validate:"required"`
	Description *string `json:"description"`
}

func CreateSubjectAPI(c *fiber.Ctx, db *sql.DB) error {
	var req subjectRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	subject := &models.Subject{Name: req.Name, Code: req.Code, Description: req.Description}
	if err := database.CreateSubject(db, subject); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": subject})
}

func UpdateSubjectAPI(c *fiber.Ctx, db *sql.DB) error {
	var req subjectRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	subject := &models.Subject{
		ID:          c.Params("id"),
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := database.UpdateSubject(db, subject); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": subject})
}

// DeleteSubjectAPI removes a subject. Rejected while enrollments, exams
// or teaching assignments still reference it.
func DeleteSubjectAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteSubject(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "subject deleted"})
}
