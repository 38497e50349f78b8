package handler

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/usecase"
)

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(errorBody(err))
}

func errorBody(err error) fiber.Map {
	ae := apperror.From(err)
	body := fiber.Map{"error": ae.Message}
	if ae.Details != "" && ae.Code != apperror.CodeInternal {
		body["details"] = ae.Details
	}
	return body
}

func statusOf(err error) int {
	return apperror.From(err).Status
}

type eventView struct {
	ID            string    `json:"id"`
	User          string    `json:"user"`
	Timestamp     time.Time `json:"timestamp"`
	ActionType    string    `json:"action_type"`
	WireType      string    `json:"wire_type,omitempty"`
	AccessGranted *bool     `json:"access_granted"` // null = sin dato
	AuthMethod    string    `json:"auth_method,omitempty"`
	Details       string    `json:"details,omitempty"`
}

func toEventViews(events []model.PresenceEvent) []eventView {
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{
			ID:            e.ID,
			User:          e.User,
			Timestamp:     e.Timestamp,
			ActionType:    string(e.ActionType),
			WireType:      e.WireType,
			AccessGranted: e.AccessGranted.Ptr(),
			AuthMethod:    e.AuthMethod,
			Details:       e.Details,
		})
	}
	return out
}

type dashboardView struct {
	Username       string      `json:"username"`
	Window         string      `json:"window"`
	Status         string      `json:"status"`
	LastActionTime *time.Time  `json:"last_action_time"`
	FilteredHours  float64     `json:"filtered_hours"`
	FormattedHours string      `json:"formatted_hours"`
	TotalMinutes   int64       `json:"total_minutes"`
	SessionCount   int         `json:"session_count"`
	Events         []eventView `json:"events,omitempty"`
	ActiveDays     []string    `json:"active_days,omitempty"`
	RefreshedAt    time.Time   `json:"refreshed_at"`
	Source         string      `json:"source"` // live / snapshot
	Stale          bool        `json:"stale"`
}

func toDashboardView(d *usecase.Dashboard) dashboardView {
	v := dashboardView{
		Username:       d.Username,
		Window:         d.Window,
		Status:         string(d.Stats.Status),
		LastActionTime: d.Stats.LastActionTime,
		FilteredHours:  d.Stats.FilteredHours,
		FormattedHours: attendance.FormatHours(d.Stats.FilteredHours),
		TotalMinutes:   d.Stats.TotalMinutes,
		SessionCount:   d.Stats.SessionCount,
		RefreshedAt:    d.RefreshedAt,
		Source:         "snapshot",
		Stale:          d.Stale,
	}
	if d.Report != nil {
		v.Source = "live"
		v.Events = toEventViews(d.Report.Events)
		for date := range d.Report.Days.ByDate(d.Username) {
			v.ActiveDays = append(v.ActiveDays, date)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(v.ActiveDays)))
	}
	return v
}

func localsString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
