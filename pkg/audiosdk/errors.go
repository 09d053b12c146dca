package audiosdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/linguastream/linguastream/pkg/httpx"
)

// API error codes returned in the "error" field.
const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeInvalidToken   = "invalid_token"
	ErrorCodeTokenExpired   = "token_expired"
	ErrorCodeAccessDenied   = "access_denied"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeRangeError     = "range_not_satisfiable"
	ErrorCodeServerError    = "server_error"
)

// APIError is the wire format for every non-2xx response. It implements
// the error interface so the SDK client can surface it directly, and the
// server handlers use WriteError to emit it.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
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
	// ErrInvalidRequest covers malformed bodies, missing parameters and
	// unusable path values.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidToken is returned when an access token fails to decrypt,
	// was tampered with, or authorizes a different operation.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "invalid or unauthorized access token",
	}

	// ErrTokenExpired is returned when a token decrypts cleanly but its
	// grant window has passed.
	ErrTokenExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeTokenExpired,
		Description: "access token has expired",
	}

	// ErrAccessDenied is returned when the caller is not enrolled in the
	// course or does not own the track.
	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	// ErrNotFound is returned when the track or its audio is missing.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "resource not found",
	}

	// ErrRangeNotSatisfiable is returned for byte ranges outside the
	// resource.
	ErrRangeNotSatisfiable = &APIError{
		StatusCode:  http.StatusRequestedRangeNotSatisfiable,
		Code:        ErrorCodeRangeError,
		Description: "requested range not satisfiable",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)
