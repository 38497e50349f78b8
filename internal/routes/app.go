package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ElTrompa/ProyectoSP32/internal/middleware"
)

// NewApp builds the fiber app with global middleware and every route group.
func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "presencia-gateway",
		ReadTimeout:  d.Cfg.UpstreamTimeout * 3,
		WriteTimeout: d.Cfg.UpstreamTimeout * 3,
	})

	// Global middleware
	app.Use(cors.New())
	app.Use(middleware.RequestID)
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:request_id} ${status} ${latency} ${method} ${path}\n",
	}))

	SetupHealthRoutes(app, d)
	SetupAuthRoutes(app, d)
	SetupDashboardRoutes(app, d)
	SetupClockRoutes(app, d)
	SetupPresenceRoutes(app, d)
	SetupSensorRoutes(app, d)
	SetupReportRoutes(app, d)
	SetupUserRoutes(app, d)

	return app
}
