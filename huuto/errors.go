package huuto

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrConfigMissing indicates the credential file does not exist
	ErrConfigMissing = errors.New("credential file not found")
	// ErrConfigMalformed indicates the credential file is unreadable or incomplete
	ErrConfigMalformed = errors.New("credential file malformed")
	// ErrCredentialsInvalid indicates username or password is absent
	ErrCredentialsInvalid = errors.New("username and password are required")
	// ErrAuthenticationFailed indicates the API rejected a login attempt
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrMissingPathParam indicates a path template placeholder had no value
	ErrMissingPathParam = errors.New("missing path parameter")
)

// ErrorKind classifies API call failures.
type ErrorKind int

const (
	// KindAuthRejected covers 401 and 403 responses on authenticated calls.
	KindAuthRejected ErrorKind = iota
	// KindClientError covers other 4xx responses; the raw API payload is
	// carried unchanged since validation messages are domain data.
	KindClientError
	// KindServerError covers 5xx responses.
	KindServerError
	// KindTransportError covers connection failures, timeouts and
	// cancellation at the transport boundary.
	KindTransportError
)

// String returns a human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthRejected:
		return "auth rejected"
	case KindClientError:
		return "client error"
	case KindServerError:
		return "server error"
	case KindTransportError:
		return "transport error"
	}
	return "unknown"
}

// APIError represents a failed Huuto API call.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Path       string
	Body       []byte
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("huuto API %s: %s %s: %v", e.Kind, e.Method, e.Path, e.Err)
	}
	return fmt.Sprintf("huuto API %s: %s %s: status %d", e.Kind, e.Method, e.Path, e.StatusCode)
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsUnauthorized checks if the error indicates a rejected or missing token
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}
