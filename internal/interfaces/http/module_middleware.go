package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Swasthya-api/internal/application/dto"
)

// RequireModule corta las rutas de un módulo opcional que no está configurado
// (por ejemplo la clínica antirrábica sin MONGO_URI) con 503 MODULE_DISABLED.
func RequireModule(name string, enabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !enabled {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_DISABLED",
				Message: "el módulo '" + name + "' no está configurado en este servidor",
			})
		}
		return c.Next()
	}
}
