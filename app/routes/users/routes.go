package users

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupUserRoutes(app *fiber.App) {
	admin := auth.RoleMiddleware(models.RoleAdmin)

	api := app.Group("/api/users")
	api.Use(auth.AuthMiddleware, admin)
	api.Post("/", func(c *fiber.Ctx) error {
		return CreateUserAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetUserByIDAPI(c, config.GetDB())
	})
	api.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteUserAPI(c, config.GetDB())
	})

	roles := app.Group("/api/roles")
	roles.Use(auth.AuthMiddleware, admin)
	roles.Get("/", func(c *fiber.Ctx) error {
		return GetRolesAPI(c, config.GetDB())
	})
	roles.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteRoleAPI(c, config.GetDB())
	})
}
