package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupPresenceRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewAttendanceUsecase(d.Upstream, d.Log, d.Loc)
	hdl := handler.NewPresenceHandler(uc)

	app.Get("/api/presence", middleware.Auth(d.Cfg.JWTSecret), middleware.Role(usecase.RoleAdmin), hdl.GetAll)
}
