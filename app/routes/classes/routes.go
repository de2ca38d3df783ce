package classes

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupClassRoutes(app *fiber.App) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetClassByIDAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateClassAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteClassAPI(c, config.GetDB())
	})
}
