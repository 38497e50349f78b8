package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func (e *AppError) Unwrap() error { return e.Err }

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
)

func Validation(message, details string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Details: details, Status: http.StatusBadRequest}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Status: http.StatusNotFound}
}

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Status: http.StatusConflict}
}

// Upstream wraps a transport or response-shape failure from the ESP32 API.
func Upstream(message string, err error) *AppError {
	e := &AppError{Code: CodeUpstream, Message: message, Status: http.StatusBadGateway, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func Internal(message string, err error) *AppError {
	e := &AppError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// From returns err as an AppError, treating anything unknown as internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal error", err)
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Code == code
}
