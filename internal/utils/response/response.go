package response

import (
	goerrors "errors"

	"roost/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// Domain maps a typed domain error onto an HTTP status and JSON body. Errors
// that are not DomainError values become a 500.
func Domain(c *fiber.Ctx, err error) error {
	var de *errors.DomainError
	if !goerrors.As(err, &de) {
		return ServerError(c, err.Error())
	}
	status := fiber.StatusInternalServerError
	switch de.Code {
	case errors.ErrNotFound.Code:
		status = fiber.StatusNotFound
	case errors.ErrValidation.Code:
		status = fiber.StatusBadRequest
	case errors.ErrRoomFull.Code,
		errors.ErrAlreadyAssigned.Code,
		errors.ErrNotAssigned.Code,
		errors.ErrInvalidTransition.Code:
		status = fiber.StatusConflict
	case errors.ErrAuth.Code:
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
