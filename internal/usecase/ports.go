package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/ElTrompa/ProyectoSP32/internal/apperror"
	"github.com/ElTrompa/ProyectoSP32/internal/attendance"
	"github.com/ElTrompa/ProyectoSP32/internal/model"
	"github.com/ElTrompa/ProyectoSP32/internal/upstream"
)

// AttendanceSource is the part of the ESP32 API a worker dashboard needs.
type AttendanceSource interface {
	FetchPresence(ctx context.Context) ([]model.PresenceEvent, error)
	FetchSessions(ctx context.Context, user string, w attendance.Window) ([]model.WorkSession, error)
	RecordClockAction(ctx context.Context, req model.ClockRequest) (string, error)
}

// DirectorySource exposes the grouped /datos payload and user management.
type DirectorySource interface {
	FetchOverview(ctx context.Context) (model.Overview, error)
	RegisterUser(ctx context.Context, w model.Worker, pin string) (string, error)
	UpdateUser(ctx context.Context, id string, w model.Worker, pin string) (string, error)
}

var (
	_ AttendanceSource = (*upstream.Client)(nil)
	_ DirectorySource  = (*upstream.Client)(nil)
)

// upstreamError maps an ESP32 API failure onto an AppError. Client errors
// keep their status so the app can show the API's message.
func upstreamError(message string, err error) error {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Status == http.StatusNotFound:
			return &apperror.AppError{Code: apperror.CodeNotFound, Message: message, Details: se.Body, Status: http.StatusNotFound, Err: err}
		case se.Status >= 400 && se.Status < 500:
			return &apperror.AppError{Code: apperror.CodeValidation, Message: message, Details: se.Body, Status: http.StatusBadRequest, Err: err}
		}
	}
	return apperror.Upstream(message, err)
}
