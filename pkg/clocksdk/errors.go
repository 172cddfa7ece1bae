package clocksdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/smatehq/timeclock/pkg/httpx"
)

// Stable wire error codes. Clients branch on these, never on descriptions.
const (
	ErrorCodeUnauthorized     = "unauthorized"
	ErrorCodeForbidden        = "forbidden"
	ErrorCodeNotFound         = "not_found"
	ErrorCodeOutsidePerimeter = "outside_perimeter"
	ErrorCodeInvalidState     = "invalid_state"
	ErrorCodeInvalidRequest   = "invalid_request"
	ErrorCodeTransient        = "transient"
)

// APIError is the error shape shared by the server's HTTP handlers and the
// SDK client. It implements the error interface on both sides of the wire.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the stable machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Retryable reports whether retrying the same request unchanged could
// succeed. Only transient failures qualify.
func (e *APIError) Retryable() bool {
	return e.Code == ErrorCodeTransient
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrUnauthorized is returned when the bearer token is missing, invalid
	// or expired, or no acting identity could be resolved.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "the access token is missing, invalid or expired",
	}

	// ErrForbidden is returned when the acting user lacks the required role.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "the acting user does not have the required role",
	}

	// ErrNotFound is returned when the referenced resource does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrOutsidePerimeter is returned when the reported coordinate is
	// outside the location's allowed radius.
	ErrOutsidePerimeter = &APIError{
		StatusCode:  http.StatusUnprocessableEntity,
		Code:        ErrorCodeOutsidePerimeter,
		Description: "reported position is outside the location perimeter",
	}

	// ErrInvalidRequest is returned when the request body or parameters are
	// malformed.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrTransient is returned when a dependency failed in a retryable way.
	ErrTransient = &APIError{
		StatusCode:  http.StatusServiceUnavailable,
		Code:        ErrorCodeTransient,
		Description: "temporary failure, retry the request",
	}
)

// NewAPIError creates an APIError with a custom description.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{
		StatusCode:  statusCode,
		Code:        code,
		Description: description,
	}
}

// parseErrorResponse attempts to parse an HTTP error response into a typed
// *APIError. Returns nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeTransient,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
