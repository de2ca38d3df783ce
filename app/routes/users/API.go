package users

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/requests"
)

// CreateUserAPI registers a standalone login identity, usually an extra
// admin. Student, teacher and parent identities are created through
// their own endpoints.
func CreateUserAPI(c *fiber.Ctx, db *sql.DB) error {
	type userRequest struct {
		Email     string   `json:"email" validate:"required,email"`
		Password  string   `json:"password" validate:"required,min=8"`
		FirstName string   `json:"first_name" validate:"required"`
		LastName  string   `json:"last_name" validate:"required"`
		Roles     []string `json:"roles" validate:"required,min=1,dive,oneof=admin teacher student parent"`
	}
	var req userRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := database.CreateUser(db, user, req.Roles...); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": user})
}

func GetUserByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	user, err := database.GetUserByID(db, c.Params("id"))
	if err != nil {
		return err
	}
	if user.Roles, err = database.GetUserRoles(db, user.ID); err != nil {
		return err
	}
	user.Password = ""
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func DeleteUserAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteUser(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "user deleted"})
}

func GetRolesAPI(c *fiber.Ctx, db *sql.DB) error {
	roles, err := database.ListRoles(db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": roles, "count": len(roles)})
}

// DeleteRoleAPI removes a role. Rejected while any user still holds it.
func DeleteRoleAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteRole(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "role deleted"})
}
