package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/vanskyhawk/kanban/internal/dto"
)

var validate = validator.New()

// parseBody decodes and validates a JSON request body. When it returns
// false the 400 response has already been written.
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
		return false
	}
	if err := validate.Struct(out); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Validation failed: " + err.Error(),
		})
		return false
	}
	return true
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func notFound(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusNotFound, "Not found")
}

func internalError(c *fiber.Ctx) error {
	return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
}
