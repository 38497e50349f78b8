package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SelfOrAdmin lets a worker reach only routes whose param names themselves.
// Admins pass unconditionally.
func SelfOrAdmin(param, adminRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals("role").(string); role == adminRole {
			return c.Next()
		}

		username, ok := c.Locals("username").(string)
		if !ok || username == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado: usuario no válido"})
		}
		if !strings.EqualFold(username, c.Params(param)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado: solo puedes consultar tus propios datos"})
		}
		return c.Next()
	}
}
