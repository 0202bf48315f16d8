package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/StefanHaring/InkPress/internal/pkg/blog"
)

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SuccessResponseWithWarning is SuccessResponse plus a non-fatal warning,
// used when an image upload degraded to "post saved without image".
func SuccessResponseWithWarning(c *fiber.Ctx, status int, message string, data interface{}, warning string) error {
	if warning == "" {
		return SuccessResponse(c, status, message, data)
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
		"warning": warning,
	})
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// respondServiceError maps the lifecycle error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a storage-level failure: logged with
// context, surfaced as the operation's generic 500 message.
func respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	var verr *blog.ValidationError
	switch {
	case errors.As(err, &verr):
		return ErrorResponse(c, fiber.StatusBadRequest, verr.Message)
	case errors.Is(err, blog.ErrUnauthenticated):
		return ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized User")
	case errors.Is(err, blog.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, "Post Not Found")
	case errors.Is(err, blog.ErrForbidden):
		return ErrorResponse(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, blog.ErrConflict):
		return ErrorResponse(c, fiber.StatusConflict, "A post with this title already exists")
	default:
		log.Errorf("[Blog] %s: %v", c.Path(), err)
		return ErrorResponse(c, fiber.StatusInternalServerError, fallback)
	}
}
