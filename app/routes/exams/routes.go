package exams

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupExamRoutes(app *fiber.App) {
	api := app.Group("/api/exams")
	api.Use(auth.AuthMiddleware)

	staff := auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher)

	api.Get("/", staff, func(c *fiber.Ctx) error {
		return GetExamsAPI(c, config.GetDB())
	})
	api.Post("/", staff, func(c *fiber.Ctx) error {
		return CreateExamAPI(c, config.GetDB())
	})
	api.Get("/:id", staff, func(c *fiber.Ctx) error {
		return GetExamByIDAPI(c, config.GetDB())
	})
	api.Put("/:id", staff, func(c *fiber.Ctx) error {
		return UpdateExamAPI(c, config.GetDB())
	})
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), func(c *fiber.Ctx) error {
		return DeleteExamAPI(c, config.GetDB())
	})

	api.Post("/:id/marks", staff, func(c *fiber.Ctx) error {
		return RecordMarksAPI(c, config.GetDB())
	})
	api.Get("/:id/marks", func(c *fiber.Ctx) error {
		return GetMarksAPI(c, config.GetDB())
	})
	api.Delete("/:id/marks/:markId", staff, func(c *fiber.Ctx) error {
		return DeleteMarkAPI(c, config.GetDB())
	})

	marks := app.Group("/api/marks")
	marks.Use(auth.AuthMiddleware)
	marks.Get("/students/:studentId", func(c *fiber.Ctx) error {
		return GetStudentMarksAPI(c, config.GetDB())
	})
}
