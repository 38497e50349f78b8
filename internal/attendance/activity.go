package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

type DayKey struct {
	User string // lower-cased
	Date string // YYYY-MM-DD in the calendar location
}

// DayActivityIndex groups events per user and calendar day.
type DayActivityIndex map[DayKey][]model.PresenceEvent

// BuildDayActivityIndex buckets events by (lower(user), calendar date), keeping
// input order inside each bucket. Events without a user are skipped.
func BuildDayActivityIndex(events []model.PresenceEvent, loc *time.Location) DayActivityIndex {
	idx := make(DayActivityIndex)
	for _, e := range events {
		if e.User == "" {
			continue
		}
		k := DayKey{User: strings.ToLower(e.User), Date: CalendarDate(e.Timestamp, loc)}
		idx[k] = append(idx[k], e)
	}
	return idx
}

// HasActivity is true iff the bucket is non-empty, denied events included.
func (idx DayActivityIndex) HasActivity(user string, day time.Time, loc *time.Location) bool {
	return len(idx[DayKey{User: strings.ToLower(user), Date: CalendarDate(day, loc)}]) > 0
}

// DayEvents returns a copy of the bucket sorted oldest first.
func (idx DayActivityIndex) DayEvents(user string, day time.Time, loc *time.Location) []model.PresenceEvent {
	bucket := idx[DayKey{User: strings.ToLower(user), Date: CalendarDate(day, loc)}]
	out := make([]model.PresenceEvent, len(bucket))
	copy(out, bucket)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// ByDate flattens the index of one user into date -> events.
func (idx DayActivityIndex) ByDate(user string) map[string][]model.PresenceEvent {
	out := make(map[string][]model.PresenceEvent)
	u := strings.ToLower(user)
	for k, v := range idx {
		if k.User == u {
			out[k.Date] = v
		}
	}
	return out
}

type DayCell struct {
	Date        string `json:"date"`
	HasActivity bool   `json:"has_activity"`
	EventCount  int    `json:"event_count"`
}

type WeekRow struct {
	Username string    `json:"username"`
	Days     []DayCell `json:"days"`
}

// WeekGrid builds one row per worker covering the 7 days from the Monday of weekStart.
func WeekGrid(workers []model.Worker, idx DayActivityIndex, weekStart time.Time, loc *time.Location) []WeekRow {
	monday := WeekStart(weekStart, loc)
	rows := make([]WeekRow, 0, len(workers))
	for _, w := range workers {
		if w.Username == "" {
			continue
		}
		row := WeekRow{Username: w.Username, Days: make([]DayCell, 7)}
		for i := 0; i < 7; i++ {
			day := monday.AddDate(0, 0, i)
			date := CalendarDate(day, loc)
			n := len(idx[DayKey{User: strings.ToLower(w.Username), Date: date}])
			row.Days[i] = DayCell{Date: date, HasActivity: n > 0, EventCount: n}
		}
		rows = append(rows, row)
	}
	return rows
}
