package routes

import (
	"github.com/ElTrompa/ProyectoSP32/internal/handler"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, d *Deps) {
	uc := usecase.NewUserUsecase(d.Upstream, d.Log, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	hdl := handler.NewAuthHandler(uc)

	app.Post("/api/auth/login", hdl.Login)
}
