package apperrors

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jackiechen20262026/marketing/types"
)

// Respond maps a core error onto the ApiResponse envelope with the proper
// HTTP status. Unknown errors are treated as internal store failures.
func Respond(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return respond(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		return respond(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrForbidden):
		return respond(c, fiber.StatusForbidden, err.Error())
	case IsValidation(err):
		return respond(c, fiber.StatusBadRequest, err.Error())
	default:
		return respond(c, fiber.StatusInternalServerError, "internal error")
	}
}

func respond(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: message,
	})
}
