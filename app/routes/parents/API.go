package parents

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"oakridge-academy/app/database"
	"oakridge-academy/app/models"
	"oakridge-academy/app/routes/auth"
	"oakridge-academy/app/routes/requests"
)

func GetParentsAPI(c *fiber.Ctx, db *sql.DB) error {
	parents, err := database.ListParents(db, c.Query("search"), c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": parents, "count": len(parents)})
}

func GetParentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if !auth.CallerFrom(c).CanViewParent(id) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	parent, err := database.GetParentByID(db, id)
	if err != nil {
		return err
	}
	if parent.Children, err = database.GetParentChildren(db, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": parent})
}

func GetParentChildrenAPI(c *fiber.Ctx, db *sql.DB) error {
	id := c.Params("id")
	if !auth.CallerFrom(c).CanViewParent(id) {
		return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
	}

	children, err := database.GetParentChildren(db, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": children, "count": len(children)})
}

type parentRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Password  string  `json:"password" validate:"omitempty,min=8"`
}

// CreateParentAPI registers a parent and, when a password is supplied, a
// login identity carrying the parent role, in one transaction.
func CreateParentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req parentRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	parent := &models.Parent{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if req.Password != "" {
		user := &models.User{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}
		if err := database.CreateUser(tx, user, models.RoleParent); err != nil {
			return err
		}
		parent.UserID = &user.ID
	}
	if err := database.CreateParent(tx, parent); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": parent})
}

func UpdateParentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req parentRequest
	if err := requests.Parse(c, &req); err != nil {
		return err
	}
	parent := &models.Parent{
		ID:        c.Params("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if err := database.UpdateParent(db, parent); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": parent})
}

// DeleteParentAPI removes a parent. Rejected while invoices still name
// the parent as the responsible payer.
func DeleteParentAPI(c *fiber.Ctx, db *sql.DB) error {
	if err := database.DeleteParent(db, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "parent deleted"})
}
