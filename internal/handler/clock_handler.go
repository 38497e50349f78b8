package handler

import (
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type ClockHandler struct {
	usecase     *usecase.DashboardUsecase
	loc         *time.Location
	defaultDays int
}

func NewClockHandler(u *usecase.DashboardUsecase, loc *time.Location, defaultDays int) *ClockHandler {
	return &ClockHandler{usecase: u, loc: loc, defaultDays: defaultDays}
}

type ClockRequest struct {
	Username string `json:"username"`
	Action   string `json:"action"` // ENTRY... o ENTRADA...
	Location string `json:"location"`
	Window   string `json:"window"`
	Date     string `json:"date"`
}

// parseAction accepts both gateway and ESP32 action names.
func parseAction(s string) model.ActionType {
	a := model.ActionType(strings.ToUpper(strings.TrimSpace(s)))
	if slices.Contains(model.ClockActions, a) {
		return a
	}
	if wire := upstream.ActionFromWire(s); wire != model.ActionUnknown {
		return wire
	}
	return a
}

func (h *ClockHandler) Clock(c *fiber.Ctx) error {
	var req ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Datos no válidos"})
	}

	// 1. Workers may only clock for themselves
	caller := localsString(c, "username")
	if req.Username == "" {
		req.Username = caller
	}
	if !strings.EqualFold(req.Username, caller) && localsString(c, "role") != usecase.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Acceso denegado: solo puedes fichar para ti"})
	}

	w, err := attendance.ParseWindow(req.Window, req.Date, h.defaultDays, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// 2. Forward and refresh
	res, err := h.usecase.Clock(c.UserContext(), usecase.ClockInput{
		Username: req.Username,
		Action:   parseAction(req.Action),
		Location: req.Location,
		Window:   w,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	body := fiber.Map{"message": res.Message}
	if res.Dashboard != nil {
		body["dashboard"] = toDashboardView(res.Dashboard)
	}
	if res.RefreshError != nil {
		body["refresh_error"] = errorBody(res.RefreshError)["error"]
	}
	return c.JSON(body)
}
