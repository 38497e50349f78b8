package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/middleware"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewUserUsecase(d.Upstream, d.Log, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	hdl := handler.NewUserHandler(uc)

	api := app.Group("/api/admin/users", middleware.Auth(d.Cfg.JWTSecret), middleware.Role(usecase.RoleAdmin))
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Register)
	api.Put("/:id", hdl.Update)
}
