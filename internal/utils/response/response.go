package response

import (
	"github.com/gofiber/fiber/v2"
)

// Form submissions answer with {"success": bool, "data": {...}} so form
// scripts can show data.message either way.

func Accepted(c *fiber.Ctx, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Rejected reports a blocked submission. message is shown to the user as-is.
func Rejected(c *fiber.Ctx, message string) error {
	return Failure(c, fiber.StatusUnprocessableEntity, fiber.Map{"message": message})
}

func Failure(c *fiber.Ctx, status int, data fiber.Map) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
