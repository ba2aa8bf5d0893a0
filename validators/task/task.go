package taskValidator

import (
	"strings"

	"coursebuilder/middleware"
	"coursebuilder/models/course"
	"coursebuilder/validators"

	"github.com/gofiber/fiber/v2"
)

type OptionRequest struct {
	Option    string `json:"option" validate:"required,min=4,max=80"`
	IsCorrect bool   `json:"isCorrect"`
}

type NewTaskRequest struct {
	Statement string          `json:"statement" validate:"required,min=4,max=255"`
	Order     int             `json:"order" validate:"required,gte=1"`
	CourseID  uint            `json:"courseId" validate:"required"`
	Options   []OptionRequest `json:"options" validate:"omitempty,dive"`
}

// NewTask validates the body shared by every task creation endpoint. Options
// sent to an OPEN_TEXT endpoint are dropped before validation.
func NewTask(taskType course.TaskType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NewTaskRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Statement = strings.TrimSpace(reqData.Statement)
		if !taskType.IsChoice() {
			reqData.Options = nil
		}
		for i := range reqData.Options {
			reqData.Options[i].Option = strings.TrimSpace(reqData.Options[i].Option)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTask", reqData)
		return c.Next()
	}
}
