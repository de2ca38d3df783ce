package parents

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupParentRoutes(app *fiber.App) {
	api := app.Group("/api/parents")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher), func(c *fiber.Ctx) error {
		return GetParentsAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetParentByIDAPI(c, config.GetDB())
	})
	api.Get("/:id/children", func(c *fiber.Ctx) error {
		return GetParentChildrenAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateParentAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateParentAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteParentAPI(c, config.GetDB())
	})
}
