package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) GetAll(c *fiber.Ctx) error {
	workers, err := h.usecase.ListWorkers(c.UserContext(), c.Query("q"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": workers})
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input usecase.UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos no válidos"})
	}

	msg, err := h.usecase.Register(c.UserContext(), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input usecase.UserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos no válidos"})
	}

	msg, err := h.usecase.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}
