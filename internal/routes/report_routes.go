package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewAttendanceUsecase(d.Upstream, d.Log, d.Loc)
	hdl := handler.NewReportHandler(uc, d.Loc)

	api := app.Group("/api/admin/attendance", middleware.Auth(d.Cfg.JWTSecret), middleware.Role(usecase.RoleAdmin))
	api.Get("/week", hdl.GetWeek)
	api.Get("/:username/:date", hdl.GetDayDetail)
}
