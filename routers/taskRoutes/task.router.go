package taskRoutes

import (
	taskController "coursebuilder/controllers/task"
	"coursebuilder/models/course"
	"coursebuilder/services"
	taskValidator "coursebuilder/validators/task"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes sets up task creation routes
func SetupTaskRoutes(app *fiber.App, svc *services.TaskService) {
	taskGroup := app.Group("/task/new")

	taskGroup.Post("/opentext", taskValidator.NewTask(course.TypeOpenText), taskController.CreateTask(svc, course.TypeOpenText))
	taskGroup.Post("/singlechoice", taskValidator.NewTask(course.TypeSingleChoice), taskController.CreateTask(svc, course.TypeSingleChoice))
	taskGroup.Post("/multiplechoice", taskValidator.NewTask(course.TypeMultipleChoice), taskController.CreateTask(svc, course.TypeMultipleChoice))
}
