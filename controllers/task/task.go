package taskController

import (
	"coursebuilder/middleware"
	"coursebuilder/models/course"
	"coursebuilder/services"
	taskValidator "coursebuilder/validators/task"

	"github.com/gofiber/fiber/v2"
)

// CreateTask inserts a task of the given type at the requested order.
func CreateTask(svc *services.TaskService, taskType course.TaskType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedTask").(*taskValidator.NewTaskRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		var options []services.OptionInput
		for _, option := range reqData.Options {
			options = append(options, services.OptionInput{Text: option.Option, IsCorrect: option.IsCorrect})
		}

		task, err := svc.InsertTask(c.UserContext(), services.NewTask{
			CourseID:  reqData.CourseID,
			Statement: reqData.Statement,
			Type:      taskType,
			Order:     reqData.Order,
			Options:   options,
		})
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Task created successfully!", task)
	}
}
