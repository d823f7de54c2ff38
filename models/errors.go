package models

import "fmt"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ValidationError is raised before any network call and never mutates a cart.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// RemoteError reports a failed or unreachable commerce API call.
// StatusCode is zero when no response was received.
type RemoteError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil && e.StatusCode != 0:
		return fmt.Sprintf("commerce api %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("commerce api %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("commerce api %s: unexpected status code %d: %s", e.Op, e.StatusCode, e.Body)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
