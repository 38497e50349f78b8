package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupHealthRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewHealthHandler(d.DB)

	app.Get("/health", hdl.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
