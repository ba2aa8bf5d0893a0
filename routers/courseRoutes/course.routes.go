package courseRoutes

import (
	courseController "coursebuilder/controllers/course"
	"coursebuilder/services"
	courseValidator "coursebuilder/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course lifecycle routes
func SetupCourseRoutes(app *fiber.App, svc *services.CourseService) {
	courseGroup := app.Group("/course")

	courseGroup.Post("/new", courseValidator.CreateCourse(), courseController.CreateCourse(svc))
	courseGroup.Get("/all", courseController.ListCourses(svc))
	courseGroup.Get("/:id", courseValidator.CourseID(), courseController.GetCourseTasks(svc))
	courseGroup.Get("/:id/readiness", courseValidator.CourseID(), courseController.CourseReadiness(svc))
	courseGroup.Post("/:id/publish", courseValidator.CourseID(), courseController.PublishCourse(svc))
}
