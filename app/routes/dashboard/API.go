package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
)

func GetDashboardStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetDashboardStats(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
