package invoices

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/services"
)

func SetupInvoiceRoutes(app *fiber.App, engine *services.InvoiceService) {
	admin := auth.RoleMiddleware(models.RoleAdmin)

	api := app.Group("/api/invoices")
	api.Use(auth.AuthMiddleware)

	api.Get("/", func(c *fiber.Ctx) error {
		return GetInvoicesAPI(c, config.GetDB())
	})
	api.Get("/:id", func(c *fiber.Ctx) error {
		return GetInvoiceByIDAPI(c, config.GetDB())
	})

	api.Post("/", admin, func(c *fiber.Ctx) error {
		return CreateInvoiceAPI(c, engine)
	})
	api.Put("/:id", admin, func(c *fiber.Ctx) error {
		return UpdateInvoiceAPI(c, engine)
	})
	api.Delete("/:id", admin, func(c *fiber.Ctx) error {
		return DeleteInvoiceAPI(c, engine)
	})

	api.Post("/:id/payments", func(c *fiber.Ctx) error {
		return RecordPaymentAPI(c, config.GetDB(), engine)
	})
	api.Post("/:id/waive", admin, func(c *fiber.Ctx) error {
		return WaiveInvoiceAPI(c, engine)
	})
	api.Post("/:id/unwaive", admin, func(c *fiber.Ctx) error {
		return UnwaiveInvoiceAPI(c, engine)
	})
	api.Post("/:id/recompute", admin, func(c *fiber.Ctx) error {
		return RecomputeInvoiceAPI(c, engine)
	})

	payments := app.Group("/api/payments")
	payments.Use(auth.AuthMiddleware)
	payments.Get("/", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})
	payments.Get("/:id", func(c *fiber.Ctx) error {
		return GetPaymentByIDAPI(c, config.GetDB())
	})
	payments.Put("/:id/status", admin, func(c *fiber.Ctx) error {
		return UpdatePaymentStatusAPI(c, engine)
	})
}
