package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupClockRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewClockHandler(d.Dashboard(), d.Loc, d.Cfg.DefaultWindowDays)

	app.Post("/api/clock", middleware.Auth(d.Cfg.JWTSecret), hdl.Clock)
}
