package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type AuthHandler struct {
	usecase *usecase.UserUsecase
}

func NewAuthHandler(u *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{usecase: u}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"` // PIN
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos no válidos"})
	}

	res, err := h.usecase.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Login correcto",
		"token":    res.Token,
		"username": res.Worker.Username,
		"role":     res.Role,
		"schedule": model.MergeSchedule(res.Worker.Schedule),
	})
}
