package notices

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupNoticeRoutes(app *fiber.App) {
	admin := auth.RoleMiddleware(models.RoleAdmin)

	api := app.Group("/api/notices")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error {
		return GetNoticesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetNoticeByIDAPI(c, config.GetDB())
	})
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateNoticeAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateNoticeAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteNoticeAPI(c, config.GetDB())
	})

	holidays := app.Group("/api/holidays")
	holidays.Use(auth.AuthMiddleware)
	holidays.Get("/", func(c *fiber.Ctx) error {
		return GetHolidaysAPI(c, config.GetDB())
	})
	holidays.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateHolidayAPI(c, config.GetDB())
	})
	holidays.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateHolidayAPI(c, config.GetDB())
	})
	holidays.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteHolidayAPI(c, config.GetDB())
	})
}
