package courseValidator

import (
	"strings"

	"coursebuilder/middleware"
	"coursebuilder/validators"

	"github.com/gofiber/fiber/v2"
)

type NewCourseRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=255"`
	Description     string `json:"description" validate:"max=2000"`
	EmailInstructor string `json:"emailInstructor" validate:"required,email"`
}

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(NewCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.EmailInstructor = strings.TrimSpace(reqData.EmailInstructor)

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates the :id parameter of course routes
func CourseID() fiber.Handler {
	return validators.IDParam("id", "courseID", "Course")
}
