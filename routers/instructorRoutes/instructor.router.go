package instructorRoutes

import (
	instructorController "coursebuilder/controllers/instructor"
	"coursebuilder/services"
	instructorValidator "coursebuilder/validators/instructor"

	"github.com/gofiber/fiber/v2"
)

// SetupInstructorRoutes sets up instructor report routes
func SetupInstructorRoutes(app *fiber.App, svc *services.ReportService) {
	instructorGroup := app.Group("/instructor")

	instructorGroup.Get("/:id/report", instructorValidator.InstructorReport(), instructorController.InstructorReport(svc))
}
