package auth

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/routes/requests"
)

func LoginAPI(c *fiber.Ctx, db *sql.DB) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	user, err := database.GetUserByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	if !CheckPasswordHash(req.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	roles, err := database.GetUserRoles(db, user.ID)
	if err != nil {
		return err
	}
	user.Roles = roles

	claims := JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	for _, role := range roles {
		claims.Roles = append(claims.Roles, role.Name)
	}

	// Profile links ride in the token so per-request authorization does
	// not need extra lookups.
	if student, err := database.GetStudentByUserID(db, user.ID); err == nil {
		claims.StudentID = student.ID
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if teacher, err := database.GetTeacherByUserID(db, user.ID); err == nil {
		claims.TeacherID = teacher.ID
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if parent, err := database.GetParentByUserID(db, user.ID); err == nil {
		claims.ParentID = parent.ID
		children, err := database.GetParentChildren(db, parent.ID)
		if err != nil {
			return err
		}
		for _, child := range children {
			claims.ChildIDs = append(claims.ChildIDs, child.ID)
		}
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	token, err := GenerateJWT(claims)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	user.Password = ""
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"success": true, "message": "logged out"})
}

func MeAPI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": CallerFrom(c)})
}

func ChangePasswordAPI(c *fiber.Ctx, db *sql.DB) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}

	var req ChangePasswordRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}

	userID := c.Locals("user_id").(string)
	user, err := database.GetUserByID(db, userID)
	if err != nil {
		return err
	}
	if !CheckPasswordHash(req.CurrentPassword, user.Password) {
		return fiber.NewError(fiber.StatusBadRequest, "current password is incorrect")
	}

	hashed, err := database.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := database.UpdateUserPassword(db, userID, hashed); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "password changed"})
}
