package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSensorRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewSensorHandler(d.Upstream)

	api := app.Group("/api/sensors", middleware.Auth(d.Cfg.JWTSecret))
	api.Get("/light", hdl.GetLight)
	api.Get("/weather", hdl.GetWeather)
	api.Get("/rfid", hdl.GetRFID)
}
