package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/requests"
)

func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.ListClasses(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": classes, "count": len(classes)})
}

func GetClassByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	class, err := database.GetClassByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": class})
}

type classRequest struct {
	Name        string  `json:"name" validate:"required"`
	Section     *string `json:"section"`
	YearLevel   *int    `json:"year_level" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req classRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	class := &models.Class{
		Name:        req.Name,
		Section:     req.Section,
		YearLevel:   req.YearLevel,
		Description: req.Description,
	}
	if err := database.CreateClass(db, class); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": class})
}

func UpdateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req classRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	class := &models.Class{
		ID:          c.Params("id"),
		Name:        req.Name,
		Section:     req.Section,
		YearLevel:   req.YearLevel,
		Description: req.Description,
	}
	if err := database.UpdateClass(db, class); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": class})
}

// DeleteClassAPI removes a class. Rejected while students or enrollments
// still reference it.
func DeleteClassAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteClass(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "class deleted"})
}
