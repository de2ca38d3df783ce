package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App) {
	api := app.Group("/api/dashboard")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", auth.RoleMiddleware(models.RoleAdmin), func(c *fiber.Ctx) error {
		return GetDashboardStatsAPI(c, config.GetDB())
	})
}
