package quotes

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrorType is the failure class of one source attempt. It is used as a metrics label.
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeStatus     ErrorType = "status"
	ErrorTypeValidation ErrorType = "validation"
)

// FetchError represents a failed source attempt.
type FetchError struct {
	Type       ErrorType
	Source     string
	StatusCode int
	Message    string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Source, e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Source, e.Type, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

func newStatusError(source string, status int) *FetchError {
	return &FetchError{Type: ErrorTypeStatus, Source: source, StatusCode: status, Message: "unexpected response status"}
}

func newValidationError(source, format string, a ...any) *FetchError {
	return &FetchError{Type: ErrorTypeValidation, Source: source, Message: fmt.Sprintf(format, a...)}
}

// classify turns a transport error into a FetchError.
func classify(source string, err error) *FetchError {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &FetchError{Type: ErrorTypeTimeout, Source: source, Message: "request aborted", Cause: err}
	case errors.As(err, &ne) && ne.Timeout():
		return &FetchError{Type: ErrorTypeTimeout, Source: source, Message: "request timed out", Cause: err}
	default:
		return &FetchError{Type: ErrorTypeNetwork, Source: source, Message: "request failed", Cause: err}
	}
}

// Class returns the failure class of err, or "unknown" for errors not produced here.
func Class(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return string(fe.Type)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return string(ErrorTypeTimeout)
	}
	return "unknown"
}
