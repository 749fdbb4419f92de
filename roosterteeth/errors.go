package roosterteeth

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid roosterteeth client configuration")
	// ErrInvalidArgument indicates a malformed operation argument such as an empty slug
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAuthentication indicates the password-grant exchange at construction failed
	ErrAuthentication = errors.New("roosterteeth authentication failed")
	// ErrInvalidCredentials indicates the auth server rejected the username or password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized indicates the API rejected the request credentials
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrVideoUnavailable indicates the viewer is not entitled to the video
	ErrVideoUnavailable = errors.New("video is not (yet?) available for this viewer")
)

const maxErrorBody = 512

// APIError represents a non-success response from any operation other than
// GetVideo.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func newAPIError(status int, endpoint string, body []byte) *APIError {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return &APIError{StatusCode: status, Endpoint: endpoint, Body: string(body)}
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("roosterteeth API error: %s: status %d: %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Is lets errors.Is match the sentinel that corresponds to the status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.IsNotFound()
	case ErrUnauthorized:
		return e.IsUnauthorized()
	}
	return false
}

// VideoUnavailableError is returned by GetVideo when the API refuses the
// video. It is the expected outcome for viewers without the required tier.
type VideoUnavailableError struct {
	Slug       string
	StatusCode int
}

func (e *VideoUnavailableError) Error() string {
	return fmt.Sprintf("video %q unavailable: status %d: %v", e.Slug, e.StatusCode, ErrVideoUnavailable)
}

// Is matches ErrVideoUnavailable.
func (e *VideoUnavailableError) Is(target error) bool {
	return target == ErrVideoUnavailable
}

// IsNotFound reports whether the API answered 404 rather than refusing access.
func (e *VideoUnavailableError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the API refused access outright.
func (e *VideoUnavailableError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
