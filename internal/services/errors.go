package services

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// ErrorCategory classifies outbound-service failures. Categories are
// preserved all the way to the response so callers can tell a dead upstream
// from a misconfigured one.
type ErrorCategory string

const (
	CategoryConfig     ErrorCategory = "config"     // missing or bad local configuration
	CategoryConnection ErrorCategory = "connection" // upstream unreachable
	CategoryTimeout    ErrorCategory = "timeout"    // upstream too slow
	CategoryDecode     ErrorCategory = "decode"     // malformed upstream payload
	CategoryNotFound   ErrorCategory = "not_found"  // upstream says the resource does not exist
	CategoryUpstream   ErrorCategory = "upstream"   // any other upstream failure
)

type ServiceError struct {
	Category ErrorCategory
	Message  string
	Err      error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func serviceErr(category ErrorCategory, message string, err error) *ServiceError {
	return &ServiceError{Category: category, Message: message, Err: err}
}

// classify turns a transport error into a categorized ServiceError.
func classify(message string, err error) *ServiceError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return serviceErr(CategoryTimeout, message, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return serviceErr(CategoryConnection, message, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return serviceErr(CategoryConnection, message, err)
	}

	return serviceErr(CategoryUpstream, message, err)
}

// HTTPStatus maps a category onto the status the boundary layer returns.
func (e *ServiceError) HTTPStatus() int {
	switch e.Category {
	case CategoryConfig:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryDecode:
		return http.StatusBadGateway
	case CategoryConnection:
		return http.StatusServiceUnavailable
	case CategoryTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// AsServiceError extracts a ServiceError if the chain holds one.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	ok := errors.As(err, &se)
	return se, ok
}
