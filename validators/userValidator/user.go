package userValidator

import (
	"strings"

	"coursebuilder/middleware"
	"coursebuilder/validators"

	"github.com/gofiber/fiber/v2"
)

type NewUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=STUDENT INSTRUCTOR"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

// CreateUser validates user registration request
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NewUserRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}
