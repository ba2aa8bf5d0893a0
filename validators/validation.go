package validators

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"coursebuilder/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates reqData against its `validate` tags and returns one message
// per failing field, keyed by the field's JSON path.
func Struct(reqData interface{}) map[string]string {
	err := validate.Struct(reqData)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	errors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if _, exists := errors[key]; !exists {
			errors[key] = fieldMessage(fe)
		}
	}
	return errors
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address!", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long!", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s!", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}

// IDParam parses a positive numeric route parameter and stores it in Locals under localKey.
func IDParam(param, localKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.FieldErrorResponse(c, fiber.StatusBadRequest, param, label+" ID is required!")
		}

		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id == 0 {
			return middleware.FieldErrorResponse(c, fiber.StatusBadRequest, param, "Invalid "+label+" ID!")
		}

		c.Locals(localKey, uint(id))
		return c.Next()
	}
}
