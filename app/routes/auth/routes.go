package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/config"
	"oakridge-academy/app/policy"
)

func SetupAuthRoutes(app *fiber.App) {
	grp := app.Group("/api/auth")

	grp.Post("/login", func(c *fiber.Ctx) error {
		return LoginAPI(c, config.GetDB())
	})
	grp.Post("/logout", LogoutAPI)

	grp.Use(AuthMiddleware)
	grp.Get("/me", MeAPI)
	grp.Post("/change-password", func(c *fiber.Ctx) error {
		return ChangePasswordAPI(c, config.GetDB())
	})
}

// AuthMiddleware validates the JWT from the cookie or Authorization
// header and stores the resolved caller on the request context.
func AuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		if header := c.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}

	caller := policy.Caller{
		UserID:    claims.UserID,
		Roles:     claims.Roles,
		StudentID: claims.StudentID,
		TeacherID: claims.TeacherID,
		ParentID:  claims.ParentID,
		ChildIDs:  claims.ChildIDs,
	}
	c.Locals("caller", caller)
	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	return c.Next()
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *fiber.Ctx) policy.Caller {
	caller, _ := c.Locals("caller").(policy.Caller)
	return caller
}

// RoleMiddleware rejects callers holding none of the allowed roles.
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := CallerFrom(c)
		for _, role := range allowedRoles {
			if caller.Is(role) {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}
}
