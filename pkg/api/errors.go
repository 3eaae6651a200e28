package api

import (
	"errors"
	"fmt"
	"net/http"

	"tickit/pkg/tasks"
)

// ErrUnauthenticated means there is no usable session: no token, an expired
// token, or the server refused the one we sent. The caller should ask the user
// to log in again.
var ErrUnauthenticated = errors.New("session expired, please log in again")

// NetworkError is a transport failure or a response the client could not use
type NetworkError struct {
	Op         string
	StatusCode int // 0 when no response arrived
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a request the server rejected. Message is shown to the user verbatim.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsNotFound reports a 404 from the server
func IsNotFound(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.StatusCode == http.StatusNotFound
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.StatusCode == http.StatusNotFound
	}
	return false
}

// UserMessage turns any gateway or form error into notification text.
// Unexpected failures get the fallback; their detail belongs in the log.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var fe *tasks.FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Session expired. Please log in again."
	}
	return fallback
}
