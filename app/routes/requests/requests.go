// Package requests centralizes request body parsing and validation for
// the API handlers.
package requests

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Parse decodes the JSON body into dst and runs struct validation.
// Failures surface as 400 responses naming the offending field.
func Parse(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			field := strings.ToLower(errs[0].Field())
			return fiber.NewError(fiber.StatusBadRequest, field+" failed on '"+errs[0].Tag()+"'")
		}
		return fiber.NewError(fiber.StatusBadRequest, "validation failed")
	}
	return nil
}
