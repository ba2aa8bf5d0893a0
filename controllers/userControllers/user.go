package userController

import (
	"coursebuilder/middleware"
	"coursebuilder/models"
	"coursebuilder/services"
	"coursebuilder/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// CreateUser registers a student or instructor
func CreateUser(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedUser").(*userValidator.NewUserRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		user, err := svc.CreateUser(c.UserContext(), reqData.Name, reqData.Email, models.Role(reqData.Role), reqData.Password)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", user)
	}
}

// ListUsers lists all registered users
func ListUsers(svc *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext())
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
			"users": users,
			"total": len(users),
		})
	}
}
