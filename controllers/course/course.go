package courseController

import (
	"errors"

	"coursebuilder/middleware"
	"coursebuilder/services"
	courseValidator "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a new course in BUILDING status
func CreateCourse(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedCourse").(*courseValidator.NewCourseRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		created, err := svc.CreateCourse(c.UserContext(), reqData.Title, reqData.Description, reqData.EmailInstructor)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", created)
	}
}

// ListCourses lists all courses
func ListCourses(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courses, err := svc.ListCourses(c.UserContext())
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
			"courses": courses,
			"total":   len(courses),
		})
	}
}

// GetCourseTasks returns a course with its tasks in order
func GetCourseTasks(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Locals("courseID").(uint)

		found, tasks, err := svc.CourseTasks(c.UserContext(), courseID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
			"course": found,
			"tasks":  tasks,
		})
	}
}

// PublishCourse publishes a BUILDING course once its tasks are complete
func PublishCourse(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Locals("courseID").(uint)

		published, err := svc.Publish(c.UserContext(), courseID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", published)
	}
}

// CourseReadiness reports whether a course could be published right now
func CourseReadiness(svc *services.CourseService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Locals("courseID").(uint)

		err := svc.CheckCourseIntegrity(c.UserContext(), courseID)
		if err == nil {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Course is ready to be published!", fiber.Map{
				"ready": true,
			})
		}

		var validationErr *services.ValidationError
		if !errors.As(err, &validationErr) {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course is not ready to be published!", fiber.Map{
			"ready":   false,
			"kind":    validationErr.Kind,
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	}
}
