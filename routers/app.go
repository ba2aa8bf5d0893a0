package routers

import (
	"coursebuilder/routers/courseRoutes"
	"coursebuilder/routers/instructorRoutes"
	"coursebuilder/routers/taskRoutes"
	"coursebuilder/routers/userRoutes"
	"coursebuilder/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// NewApp builds the Fiber application with every route group mounted.
func NewApp(svc *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "coursebuilder",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	taskRoutes.SetupTaskRoutes(app, svc.Tasks)
	courseRoutes.SetupCourseRoutes(app, svc.Courses)
	instructorRoutes.SetupInstructorRoutes(app, svc.Reports)
	userRoutes.SetupUserRoutes(app, svc.Users)

	return app
}
