package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type DashboardHandler struct {
	usecase     *usecase.DashboardUsecase
	loc         *time.Location
	defaultDays int
}

func NewDashboardHandler(u *usecase.DashboardUsecase, loc *time.Location, defaultDays int) *DashboardHandler {
	return &DashboardHandler{usecase: u, loc: loc, defaultDays: defaultDays}
}

// GetDashboard refreshes and returns the worker's dashboard. On failure the
// previously applied state, if any, is returned under "previous".
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	username := c.Params("username")
	w, err := attendance.ParseWindow(c.Query("window"), c.Query("date"), h.defaultDays, h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := h.usecase.Refresh(c.UserContext(), username, w)
	if err != nil {
		resp := errorBody(err)
		if prev, perr := h.usecase.Current(username); perr == nil {
			resp["previous"] = toDashboardView(prev)
		}
		return c.Status(statusOf(err)).JSON(resp)
	}
	return c.JSON(toDashboardView(d))
}

func (h *DashboardHandler) GetLast(c *fiber.Ctx) error {
	d, err := h.usecase.Current(c.Params("username"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toDashboardView(d))
}

func (h *DashboardHandler) GetClockHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	list, err := h.usecase.ClockHistory(c.Params("username"), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

// GetSummary counts workers per stored status, for the admin home.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	s, err := h.usecase.Summary()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"by_status":            s.ByStatus,
		"failed_clock_actions": s.FailedClocks,
	})
}
