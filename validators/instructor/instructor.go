package instructorValidator

import (
	"coursebuilder/validators"

	"github.com/gofiber/fiber/v2"
)

// InstructorReport validates the instructor id of a report request.
func InstructorReport() fiber.Handler {
	return validators.IDParam("id", "instructorID", "Instructor")
}
