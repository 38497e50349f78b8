package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type PresenceHandler struct {
	usecase *usecase.AttendanceUsecase
}

func NewPresenceHandler(u *usecase.AttendanceUsecase) *PresenceHandler {
	return &PresenceHandler{usecase: u}
}

// GetAll returns the complete presence log, newest first.
func (h *PresenceHandler) GetAll(c *fiber.Ctx) error {
	events, err := h.usecase.PresenceLog(c.UserContext())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": toEventViews(events)})
}
