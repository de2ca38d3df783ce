package subjects

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupSubjectRoutes(app *fiber.App) {
	api := app.Group("/api/subjects")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetSubjectsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetSubjectByIDAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateSubjectAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateSubjectAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteSubjectAPI(c, config.GetDB())
	})
}
