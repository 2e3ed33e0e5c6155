// Package apperror defines the error taxonomy shared by services and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeThemeNotFound     Code = "THEME_NOT_FOUND"
	CodeBookingNotFound   Code = "BOOKING_NOT_FOUND"
	CodeSlotUnavailable   Code = "SLOT_UNAVAILABLE"
	CodeInvalidTransition Code = "INVALID_TRANSITION"
	CodeCheckout          Code = "CHECKOUT_ERROR"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeForbidden         Code = "FORBIDDEN"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeInternal          Code = "INTERNAL_SERVER_ERROR"
)

// Error carries an HTTP status and a stable code alongside the message shown
// to the caller. Err holds the underlying cause and is never serialized.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details any
	Err     error
}

func New(status int, code Code, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrValidation        = New(http.StatusBadRequest, CodeValidation, "validation failed")
	ErrThemeNotFound     = New(http.StatusNotFound, CodeThemeNotFound, "theme not found")
	ErrBookingNotFound   = New(http.StatusNotFound, CodeBookingNotFound, "booking not found")
	ErrSlotUnavailable   = New(http.StatusConflict, CodeSlotUnavailable, "selected time slot is no longer available")
	ErrInvalidTransition = New(http.StatusConflict, CodeInvalidTransition, "booking status transition not allowed")
	ErrCheckout          = New(http.StatusInternalServerError, CodeCheckout, "payment provider error")
	ErrUnauthorized      = New(http.StatusUnauthorized, CodeUnauthorized, "authentication required")
	ErrForbidden         = New(http.StatusForbidden, CodeForbidden, "access denied")
	ErrRateLimited       = New(http.StatusTooManyRequests, CodeRateLimited, "too many requests, try again later")
	ErrInternal          = New(http.StatusInternalServerError, CodeInternal, "internal server error")
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code so copies made by With* still satisfy errors.Is
// against the package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// WithMessage returns a copy with a caller-facing message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	c := e.clone()
	c.Message = fmt.Sprintf(format, args...)
	return c
}

// WithDetails returns a copy carrying structured details, e.g. field errors.
func (e *Error) WithDetails(details any) *Error {
	c := e.clone()
	c.Details = details
	return c
}

// Wrap returns a copy with err attached as the cause.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.Err = err
	return c
}

// Validation builds a VALIDATION_ERROR with field-level details.
func Validation(message string, fields map[string]string) *Error {
	e := ErrValidation.WithMessage("%s", message)
	if len(fields) > 0 {
		e.Details = fields
	}
	return e
}

// From extracts the *Error in err's chain. Anything else becomes an
// INTERNAL_SERVER_ERROR wrapping err.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.Wrap(err)
}
