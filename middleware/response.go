package middleware

import (
	"errors"
	"log"

	"coursebuilder/services"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}

// FieldErrorResponse reports a single rejected field.
func FieldErrorResponse(c *fiber.Ctx, statusCode int, field, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"field":   field,
		"message": message,
		"data":    nil,
	})
}

// ServiceErrorResponse maps an error returned by a service onto an HTTP response.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return FieldErrorResponse(c, fiber.StatusBadRequest, validationErr.Field, validationErr.Message)
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return FieldErrorResponse(c, fiber.StatusNotFound, notFoundErr.Field, notFoundErr.Message)
	}

	var authErr *services.AuthorizationError
	if errors.As(err, &authErr) {
		return FieldErrorResponse(c, fiber.StatusForbidden, authErr.Field, authErr.Message)
	}

	log.Printf("[HTTP] %s %s failed: %v", c.Method(), c.Path(), err)
	return JsonResponse(c, fiber.StatusInternalServerError, false, "Internal server error!", nil)
}
