// Package attendance derives worker status and worked-time statistics from
// presence events and work sessions. Every function here is pure.
package attendance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

var statusByAction = map[model.ActionType]model.DerivedStatus{
	model.ActionEntry:      model.StatusIn,
	model.ActionExit:       model.StatusOut,
	model.ActionBreakStart: model.StatusPaused,
	model.ActionInquiry:    model.StatusPaused,
	model.ActionBreakEnd:   model.StatusIn,
}

type StatusResult struct {
	Status         model.DerivedStatus
	LastActionTime *time.Time
}

// FilterUser keeps the events of user, compared case-insensitively.
func FilterUser(user string, events []model.PresenceEvent) []model.PresenceEvent {
	out := make([]model.PresenceEvent, 0, len(events))
	for _, e := range events {
		if e.User != "" && strings.EqualFold(e.User, user) {
			out = append(out, e)
		}
	}
	return out
}

// SortNewestFirst orders events by timestamp descending. Equal timestamps are
// ordered by id, then action, then grant, so the derived status does not
// depend on input order.
func SortNewestFirst(events []model.PresenceEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.ID != b.ID {
			return a.ID > b.ID
		}
		if a.ActionType != b.ActionType {
			return a.ActionType > b.ActionType
		}
		return a.AccessGranted > b.AccessGranted
	})
}

// DeriveStatus computes the current status of user from the latest event.
// A denied latest event still sets LastActionTime but leaves the status UNKNOWN.
func DeriveStatus(user string, events []model.PresenceEvent) StatusResult {
	mine := FilterUser(user, events)
	if len(mine) == 0 {
		return StatusResult{Status: model.StatusUnknown}
	}
	SortNewestFirst(mine)

	latest := mine[0]
	ts := latest.Timestamp
	res := StatusResult{Status: model.StatusUnknown, LastActionTime: &ts}
	if latest.AccessGranted.Denied() {
		return res
	}
	if st, ok := statusByAction[latest.ActionType]; ok {
		res.Status = st
	}
	return res
}

// FilterEventsByWindow applies w to events. Day-count and all-time windows are
// pass-through; the day-count is enforced by the upstream query.
func FilterEventsByWindow(events []model.PresenceEvent, w Window, loc *time.Location) []model.PresenceEvent {
	if w.Kind != WindowDate {
		return events
	}
	out := make([]model.PresenceEvent, 0, len(events))
	for _, e := range events {
		if sameDay(e.Timestamp, w.Date, loc) {
			out = append(out, e)
		}
	}
	return out
}

// FilterSessionsByWindow is FilterEventsByWindow for sessions, keyed on Start.
func FilterSessionsByWindow(sessions []model.WorkSession, w Window, loc *time.Location) []model.WorkSession {
	if w.Kind != WindowDate {
		return sessions
	}
	out := make([]model.WorkSession, 0, len(sessions))
	for _, s := range sessions {
		if sameDay(s.Start, w.Date, loc) {
			out = append(out, s)
		}
	}
	return out
}

type Totals struct {
	Hours        float64
	TotalMinutes int64
	SessionCount int
}

// Aggregate sums session durations. No rounding is applied.
func Aggregate(sessions []model.WorkSession) Totals {
	var minutes int64
	for _, s := range sessions {
		minutes += s.DurationMinutes
	}
	return Totals{
		Hours:        float64(minutes) / 60,
		TotalMinutes: minutes,
		SessionCount: len(sessions),
	}
}

// SplitHours splits fractional hours into whole hours and minutes, carrying a
// rounded 60th minute into the hour.
func SplitHours(hours float64) (int, int) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0, 0
	}
	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m = 0
	}
	return int(h), int(m)
}
