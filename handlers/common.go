package handlers

import (
	"errors"
	"time"

	"github.com/devcarkson/reserve-with-ease-backend-sub000/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// serviceError maps the service layer's sentinel errors onto HTTP responses.
// Anything unrecognized is an internal error and the message is not leaked.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrRoomUnavailable):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCannotCancel),
		errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrPastCheckIn),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrMissingGuestContact),
		errors.Is(err, services.ErrPropertyNotActive):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
