package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
)

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// AttendanceUsecase serves the admin views built from the whole /datos payload.
type AttendanceUsecase struct {
	source DirectorySource
	log    *zap.Logger
	loc    *time.Location
}

func NewAttendanceUsecase(source DirectorySource, log *zap.Logger, loc *time.Location) *AttendanceUsecase {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceUsecase{source: source, log: log, loc: loc}
}

type WeekView struct {
	WeekStart string
	Dates     []string
	Rows      []attendance.WeekRow
}

// WeekGrid returns the Monday-based activity grid of the week containing day,
// limited to workers whose username contains query.
func (u *AttendanceUsecase) WeekGrid(ctx context.Context, day time.Time, query string) (*WeekView, error) {
	ov, err := u.source.FetchOverview(ctx)
	if err != nil {
		u.log.Warn("overview fetch failed", zap.Error(err))
		return nil, upstreamError("no se pudo cargar la asistencia", err)
	}

	start := attendance.WeekStart(day, u.loc)
	workers := filterWorkers(ov.Workers, query)
	idx := attendance.BuildDayActivityIndex(ov.Presence, u.loc)

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = attendance.CalendarDate(start.AddDate(0, 0, i), u.loc)
	}
	return &WeekView{
		WeekStart: dates[0],
		Dates:     dates,
		Rows:      attendance.WeekGrid(workers, idx, start, u.loc),
	}, nil
}

type DayDetail struct {
	Username string
	Date     string
	Weekday  string
	Schedule string
	Events   []model.PresenceEvent // oldest first
}

// DayDetail returns the events of one worker on one calendar day together
// with the scheduled hours for that weekday.
func (u *AttendanceUsecase) DayDetail(ctx context.Context, user string, day time.Time) (*DayDetail, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, apperror.Validation("invalid request", "Username: field is required")
	}

	ov, err := u.source.FetchOverview(ctx)
	if err != nil {
		return nil, upstreamError("no se pudo cargar la asistencia", err)
	}

	idx := attendance.BuildDayActivityIndex(ov.Presence, u.loc)
	events := idx.DayEvents(user, day, u.loc)

	worker, found := findWorker(ov.Workers, user)
	if !found && len(events) == 0 {
		return nil, apperror.NotFound("trabajador")
	}

	weekday := weekdayNames[day.In(u.loc).Weekday()]
	return &DayDetail{
		Username: user,
		Date:     attendance.CalendarDate(day, u.loc),
		Weekday:  weekday,
		Schedule: model.MergeSchedule(worker.Schedule)[weekday],
		Events:   events,
	}, nil
}

// PresenceLog returns every presence record, newest first.
func (u *AttendanceUsecase) PresenceLog(ctx context.Context) ([]model.PresenceEvent, error) {
	ov, err := u.source.FetchOverview(ctx)
	if err != nil {
		return nil, upstreamError("no se pudo cargar el registro de presencia", err)
	}
	events := ov.Presence
	attendance.SortNewestFirst(events)
	return events, nil
}

func filterWorkers(workers []model.Worker, query string) []model.Worker {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return workers
	}
	out := make([]model.Worker, 0, len(workers))
	for _, w := range workers {
		if strings.Contains(strings.ToLower(w.Username), q) {
			out = append(out, w)
		}
	}
	return out
}

func findWorker(workers []model.Worker, user string) (model.Worker, bool) {
	for _, w := range workers {
		if strings.EqualFold(w.Username, user) {
			return w, true
		}
	}
	return model.Worker{}, false
}
