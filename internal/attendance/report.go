package attendance

import (
	"time"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

// Report holds every output of one refresh, computed from the same inputs.
type Report struct {
	Username string
	Window   Window
	Stats    model.AggregateStats
	Events   []model.PresenceEvent // user's events within the window, newest first
	Days     DayActivityIndex      // user's events, all time
}

// Compute derives all outputs for user. Status always reflects the latest
// event overall; hours, sessions and the event list follow w.
func Compute(user string, events []model.PresenceEvent, sessions []model.WorkSession, w Window, loc *time.Location) Report {
	status := DeriveStatus(user, events)

	mine := FilterUser(user, events)
	windowed := FilterEventsByWindow(mine, w, loc)
	list := make([]model.PresenceEvent, len(windowed))
	copy(list, windowed)
	SortNewestFirst(list)

	totals := Aggregate(FilterSessionsByWindow(sessions, w, loc))

	return Report{
		Username: user,
		Window:   w,
		Stats: model.AggregateStats{
			Status:         status.Status,
			LastActionTime: status.LastActionTime,
			FilteredHours:  totals.Hours,
			TotalMinutes:   totals.TotalMinutes,
			SessionCount:   totals.SessionCount,
		},
		Events: list,
		Days:   BuildDayActivityIndex(mine, loc),
	}
}
