package enrollments

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/enrollments")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetEnrollmentsAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateEnrollmentAPI(c, config.GetDB())
	})
	api.Put("/:id/status", admin, func(c *fiber.Ctx) error {
		return UpdateEnrollmentStatusAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteEnrollmentAPI(c, config.GetDB())
	})
}
