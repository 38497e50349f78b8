package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

type ReportHandler struct {
	usecase *usecase.AttendanceUsecase
	loc     *time.Location
	now     func() time.Time
}

func NewReportHandler(u *usecase.AttendanceUsecase, loc *time.Location) *ReportHandler {
	return &ReportHandler{usecase: u, loc: loc, now: time.Now}
}

// GetWeek serves the weekly activity grid. start is any day of the wanted
// week (YYYY-MM-DD), today by default; q filters usernames.
func (h *ReportHandler) GetWeek(c *fiber.Ctx) error {
	day := h.now()
	if start := c.Query("start"); start != "" {
		d, err := time.ParseInLocation("2006-01-02", start, h.loc)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de fecha inválido, usa YYYY-MM-DD"})
		}
		day = d
	}

	view, err := h.usecase.WeekGrid(c.UserContext(), day, c.Query("q"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"week_start": view.WeekStart,
		"dates":      view.Dates,
		"rows":       view.Rows,
	})
}

func (h *ReportHandler) GetDayDetail(c *fiber.Ctx) error {
	day, err := time.ParseInLocation("2006-01-02", c.Params("date"), h.loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Formato de fecha inválido, usa YYYY-MM-DD"})
	}

	d, err := h.usecase.DayDetail(c.UserContext(), c.Params("username"), day)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"username": d.Username,
		"date":     d.Date,
		"weekday":  d.Weekday,
		"schedule": d.Schedule,
		"events":   toEventViews(d.Events),
	})
}
