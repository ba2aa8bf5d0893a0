package userRoutes

import (
	userController "coursebuilder/controllers/userControllers"
	"coursebuilder/services"
	"coursebuilder/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user registration routes
func SetupUserRoutes(app *fiber.App, svc *services.UserService) {
	userGroup := app.Group("/user")

	userGroup.Post("/new", userValidator.CreateUser(), userController.CreateUser(svc))
	userGroup.Get("/all", userController.ListUsers(svc))
}
