package fees

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupFeeRoutes(app *fiber.App) {
	admin := auth.RoleMiddleware(models.RoleAdmin)

	types := app.Group("/api/fee-types")
	types.Use(auth.AuthMiddleware)
	types.Get("/", func(c *fiber.Ctx) error {
		return GetFeeTypesAPI(c, config.GetDB())
	})
	types.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeTypeByIDAPI(c, config.GetDB())
	})
	types.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateFeeTypeAPI(c, config.GetDB())
	})
	types.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateFeeTypeAPI(c, config.GetDB())
	})
	types.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteFeeTypeAPI(c, config.GetDB())
	})

	classFees := app.Group("/api/class-fees")
	classFees.Use(auth.AuthMiddleware)
	classFees.Get("/", func(c *fiber.Ctx) error {
		return GetClassFeesAPI(c, config.GetDB())
	})
	classFees.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateClassFeeAPI(c, config.GetDB())
	})
	classFees.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateClassFeeAPI(c, config.GetDB())
	})
	classFees.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteClassFeeAPI(c, config.GetDB())
	})

	studentFees := app.Group("/api/student-fees")
	studentFees.Use(auth.AuthMiddleware)
	studentFees.Get("/", func(c *fiber.Ctx) error {
		return GetStudentFeesAPI(c, config.GetDB())
	})
	studentFees.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateStudentFeeAPI(c, config.GetDB())
	})
	studentFees.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteStudentFeeAPI(c, config.GetDB())
	})
}
