package instructorController

import (
	"coursebuilder/middleware"
	"coursebuilder/services"

	"github.com/gofiber/fiber/v2"
)

// InstructorReport returns the course summary of an instructor
func InstructorReport(svc *services.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		instructorID := c.Locals("instructorID").(uint)

		report, err := svc.InstructorReport(c.UserContext(), instructorID)
		if err != nil {
			return middleware.ServiceErrorResponse(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Report generated successfully!", report)
	}
}
