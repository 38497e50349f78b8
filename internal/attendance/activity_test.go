package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

func TestBuildDayActivityIndex_TwoDates(t *testing.T) {
	events := []model.PresenceEvent{
		ev("1", "Borja", "2024-01-05T09:00:00", model.ActionEntry, model.GrantAllowed),
		ev("2", "borja", "2024-01-06T09:00:00", model.ActionEntry, model.GrantAllowed),
		ev("3", "borja", "2024-01-05T17:00:00", model.ActionExit, model.GrantAllowed),
	}

	idx := BuildDayActivityIndex(events, madrid)

	require.Len(t, idx, 2)
	jan5 := idx[DayKey{User: "borja", Date: "2024-01-05"}]
	require.Len(t, jan5, 2)
	assert.Equal(t, "1", jan5[0].ID)
	assert.Equal(t, "3", jan5[1].ID)
	jan6 := idx[DayKey{User: "borja", Date: "2024-01-06"}]
	require.Len(t, jan6, 1)
	assert.Equal(t, "2", jan6[0].ID)
}

func TestBuildDayActivityIndex_MidnightBoundary(t *testing.T) {
	idx := BuildDayActivityIndex([]model.PresenceEvent{
		ev("1", "borja", "2024-01-05T23:59:59", model.ActionExit, model.GrantAllowed),
		ev("2", "borja", "2024-01-06T00:00:01", model.ActionEntry, model.GrantAllowed),
	}, madrid)

	assert.Len(t, idx, 2)
	assert.Len(t, idx[DayKey{User: "borja", Date: "2024-01-05"}], 1)
	assert.Len(t, idx[DayKey{User: "borja", Date: "2024-01-06"}], 1)
}

func TestDayActivityIndex_DeniedCountsAsActivity(t *testing.T) {
	idx := BuildDayActivityIndex([]model.PresenceEvent{
		ev("1", "borja", "2024-01-05T09:00:00", model.ActionUnknown, model.GrantDenied),
		{ID: "2", Timestamp: at("2024-01-05T09:00:00"), ActionType: model.ActionEntry},
	}, madrid)

	assert.True(t, idx.HasActivity("BORJA", at("2024-01-05T12:00:00"), madrid))
	assert.False(t, idx.HasActivity("borja", at("2024-01-06T12:00:00"), madrid))
	assert.Len(t, idx, 1)
}

func TestDayEvents_SortedAscendingCopy(t *testing.T) {
	idx := BuildDayActivityIndex([]model.PresenceEvent{
		ev("late", "borja", "2024-01-05T18:00:00", model.ActionExit, model.GrantAllowed),
		ev("early", "borja", "2024-01-05T08:00:00", model.ActionEntry, model.GrantAllowed),
	}, madrid)

	got := idx.DayEvents("borja", at("2024-01-05T00:00:00"), madrid)

	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", idx[DayKey{User: "borja", Date: "2024-01-05"}][0].ID)
}

func TestWeekGrid(t *testing.T) {
	idx := BuildDayActivityIndex([]model.PresenceEvent{
		ev("1", "borja", "2024-01-08T09:00:00", model.ActionEntry, model.GrantAllowed),
		ev("2", "borja", "2024-01-08T17:00:00", model.ActionExit, model.GrantAllowed),
		ev("3", "ana", "2024-01-14T09:00:00", model.ActionEntry, model.GrantAllowed),
	}, madrid)
	workers := []model.Worker{{Username: "Borja"}, {Username: "ana"}, {Username: ""}}

	// Wednesday 2024-01-10 belongs to the week starting Monday 2024-01-08.
	rows := WeekGrid(workers, idx, at("2024-01-10T15:00:00"), madrid)

	require.Len(t, rows, 2)
	assert.Equal(t, "2024-01-08", rows[0].Days[0].Date)
	assert.Equal(t, "2024-01-14", rows[0].Days[6].Date)
	assert.True(t, rows[0].Days[0].HasActivity)
	assert.Equal(t, 2, rows[0].Days[0].EventCount)
	assert.False(t, rows[0].Days[1].HasActivity)
	assert.True(t, rows[1].Days[6].HasActivity)
}

func TestWeekStart_Sunday(t *testing.T) {
	got := WeekStart(at("2024-01-14T23:00:00"), madrid)
	assert.Equal(t, time.Monday, got.Weekday())
	assert.Equal(t, "2024-01-08", CalendarDate(got, madrid))
}

func TestCompute(t *testing.T) {
	events := []model.PresenceEvent{
		ev("1", "borja", "2024-01-05T09:00:00", model.ActionEntry, model.GrantAllowed),
		ev("2", "borja", "2024-01-05T13:00:00", model.ActionExit, model.GrantAllowed),
		ev("3", "borja", "2024-01-06T09:00:00", model.ActionEntry, model.GrantAllowed),
		ev("4", "ana", "2024-01-06T10:00:00", model.ActionExit, model.GrantAllowed),
	}
	sessions := []model.WorkSession{
		{ID: "s1", Start: at("2024-01-05T09:00:00"), DurationMinutes: 240},
		{ID: "s2", Start: at("2024-01-04T09:00:00"), DurationMinutes: 30},
	}

	rep := Compute("borja", events, sessions, OnDate(at("2024-01-05T00:00:00")), madrid)

	// status ignores the window
	assert.Equal(t, model.StatusIn, rep.Stats.Status)
	assert.True(t, rep.Stats.LastActionTime.Equal(at("2024-01-06T09:00:00")))
	assert.Equal(t, 4.0, rep.Stats.FilteredHours)
	assert.Equal(t, 1, rep.Stats.SessionCount)
	require.Len(t, rep.Events, 2)
	assert.Equal(t, "2", rep.Events[0].ID)
	assert.Len(t, rep.Days, 2)
}
