package teachers

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupTeacherRoutes(app *fiber.App) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)

	api.Get("/", auth.RoleMiddleware(models.RoleAdmin, models.RoleTeacher), func(c *fiber.Ctx) error {
		return GetTeachersAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetTeacherByIDAPI(c, config.GetDB())
	})

	admin := auth.RoleMiddleware(models.RoleAdmin)
	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateTeacherAPI(c, config.GetDB())
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateTeacherAPI(c, config.GetDB())
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteTeacherAPI(c, config.GetDB())
	})

	api.Post("/:id/assignments", admin, func(c *fiber.Ctx) error {
		return AssignTeacherAPI(c, config.GetDB())
	})
	api.Delete("/:id/assignments/:assignmentId", admin, func(c *fiber.Ctx) error {
		return UnassignTeacherAPI(c, config.GetDB())
	})
}
