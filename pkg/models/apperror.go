package models

import (
	"fmt"
	"net/http"
)

const (
	BadRequestErrorCode     = http.StatusBadRequest
	UnauthorizedErrorCode   = http.StatusUnauthorized
	ForbiddenErrorCode      = http.StatusForbidden
	NotFoundErrorCode       = http.StatusNotFound
	InternalServerErrorCode = http.StatusInternalServerError
	UnavailableErrorCode    = http.StatusServiceUnavailable
)

var defaultMessages = map[int]string{
	BadRequestErrorCode:     "bad request",
	UnauthorizedErrorCode:   "unauthorized",
	ForbiddenErrorCode:      "forbidden",
	NotFoundErrorCode:       "not found",
	InternalServerErrorCode: "internal server error",
	UnavailableErrorCode:    "service unavailable",
}

// AppError carries an HTTP status and a message safe to show to clients.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("code=%d, message=%s", e.Code, e.Message)
}

func NewAppError(code int, message string) *AppError {
	if message == "" {
		if defMsg, ok := defaultMessages[code]; ok {
			message = defMsg
		} else {
			message = http.StatusText(code)
		}
	}
	if message == "" {
		message = "error"
	}

	return &AppError{
		Code:    code,
		Message: message,
	}
}
