package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, d *Deps) {
	hdl := handler.NewDashboardHandler(d.Dashboard(), d.Loc, d.Cfg.DefaultWindowDays)

	self := middleware.SelfOrAdmin("username", usecase.RoleAdmin)

	api := app.Group("/api/workers", middleware.Auth(d.Cfg.JWTSecret))
	api.Get("/:username/dashboard", self, hdl.GetDashboard)
	api.Get("/:username/dashboard/last", self, hdl.GetLast)
	api.Get("/:username/clock-history", self, hdl.GetClockHistory)

	admin := app.Group("/api/admin/dashboard", middleware.Auth(d.Cfg.JWTSecret), middleware.Role(usecase.RoleAdmin))
	admin.Get("/summary", hdl.GetSummary)
}
