package utils

import (
	"github.com/gofiber/fiber/v2"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

// ErrorResponseFields reports per-field validation failures.
func ErrorResponseFields(c *fiber.Ctx, status int, message string, fields map[string]string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   "validation failed",
		"fields":  fields,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}
