package students

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupStudentRoutes(app *fiber.App) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher), func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentByIDAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteStudentAPI(c, config.GetDB())
	})

	api.Post("/:id/parents", admin, func(c *fiber.Ctx) error {
		return LinkParentAPI(c, config.GetDB())
	})
	api.Delete("/:id/parents/:parentId", admin, func(c *fiber.Ctx) error {
		return UnlinkParentAPI(c, config.GetDB())
	})
}
