package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies client errors by cause.
type ErrorCode int

const (
	// ErrUnknown is an unclassified error.
	ErrUnknown ErrorCode = iota
	// ErrTimeout is a request timeout or context deadline.
	ErrTimeout
	// ErrConnection is a transport-level failure.
	ErrConnection
	// ErrAuth is a 401 or 403 response.
	ErrAuth
	// ErrNotFound is a 404 response.
	ErrNotFound
	// ErrRateLimit is a 429 response.
	ErrRateLimit
	// ErrValidation is any other 4xx response.
	ErrValidation
	// ErrServer is a 5xx response.
	ErrServer
)

// String returns the code's name.
func (c ErrorCode) String() string {
	switch c {
	case ErrTimeout:
		return "timeout"
	case ErrConnection:
		return "connection"
	case ErrAuth:
		return "auth"
	case ErrNotFound:
		return "not_found"
	case ErrRateLimit:
		return "rate_limit"
	case ErrValidation:
		return "validation"
	case ErrServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is a classified HTTP client error.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// StatusCode is the HTTP status, zero for transport errors.
	StatusCode int

	// URL is the request URL.
	URL string

	// Body is the response body, when one was received.
	Body []byte

	// Cause is the underlying error, when one exists.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s: status %d from %s", e.Code, e.StatusCode, e.URL)
	}
	if e.Cause != nil {
		return fmt.Sprintf("httpclient: %s: %s: %v", e.Code, e.URL, e.Cause)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.URL)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewTimeoutError returns a timeout-classified error.
func NewTimeoutError(url string, cause error) *Error {
	return &Error{Code: ErrTimeout, URL: url, Cause: cause}
}

// NewConnectionError returns a connection-classified error.
func NewConnectionError(url string, cause error) *Error {
	return &Error{Code: ErrConnection, URL: url, Cause: cause}
}

// ClassifyStatusCode maps an HTTP error status to a classified error
// carrying the response body.
func ClassifyStatusCode(status int, url string, body []byte) *Error {
	e := &Error{StatusCode: status, URL: url, Body: body}
	switch {
	case status == 401 || status == 403:
		e.Code = ErrAuth
	case status == 404:
		e.Code = ErrNotFound
	case status == 429:
		e.Code = ErrRateLimit
	case status >= 400 && status < 500:
		e.Code = ErrValidation
	case status >= 500:
		e.Code = ErrServer
	default:
		e.Code = ErrUnknown
	}
	return e
}

// IsTimeout reports whether err is a timeout-classified client error.
func IsTimeout(err error) bool {
	return hasCode(err, ErrTimeout)
}

// IsConnection reports whether err is a connection-classified client error.
func IsConnection(err error) bool {
	return hasCode(err, ErrConnection)
}

// IsAuth reports whether err is an auth-classified client error.
func IsAuth(err error) bool {
	return hasCode(err, ErrAuth)
}

// IsNotFound reports whether err is a not-found-classified client error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrNotFound)
}

// IsServer reports whether err is a server-classified client error.
func IsServer(err error) bool {
	return hasCode(err, ErrServer)
}

// IsRetryable reports whether the request that produced err is worth
// retrying: transport failures, timeouts, rate limits, and 5xx responses.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case ErrTimeout, ErrConnection, ErrRateLimit, ErrServer:
		return true
	default:
		return false
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
