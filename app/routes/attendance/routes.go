package attendance

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetAttendanceAPI(c, config.GetDB())
	})
	api.Post("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher), func(c *fiber.Ctx) error {
		return MarkAttendanceAPI(c, config.GetDB())
	})
	api.Delete("/:id", auth.RoleMiddleware(models.RoleAdmin), func(c *fiber.Ctx) error {
		return DeleteAttendanceAPI(c, config.GetDB())
	})
}
