package genie

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSpaces is returned when the list endpoint has no spaces to pick from.
var ErrNoSpaces = errors.New("no genie spaces visible to this user")

// APIError is a non-2xx response from the REST API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("genie api error [%d %s]: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("genie api error [%d]: %s", e.StatusCode, e.Message)
}

// ConnectionError wraps transport failures (DNS, TLS, refused, timeouts).
type ConnectionError struct {
	Method string
	URL    string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error on %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 or a RESOURCE_DOES_NOT_EXIST response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || apiErr.ErrorCode == "RESOURCE_DOES_NOT_EXIST"
}

// IsAuth reports whether err is a 401/403 response.
func IsAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}
