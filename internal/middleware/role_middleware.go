package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
)

// Role admits tokens whose role claim matches one of allowed, ignoring case.
// Rejections carry the required roles in details.
func Role(allowed ...string) fiber.Handler {
	details := "se requiere rol: " + strings.Join(allowed, ", ")
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		role = strings.TrimSpace(role)
		if role == "" {
			return forbidden(c, apperror.Forbidden("Acceso denegado: rol no válido"), details)
		}
		for _, r := range allowed {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return forbidden(c, apperror.Forbidden("Acceso denegado: permisos insuficientes"), details)
	}
}

func forbidden(c *fiber.Ctx, ae *apperror.AppError, details string) error {
	return c.Status(ae.Status).JSON(fiber.Map{"error": ae.Message, "details": details})
}
