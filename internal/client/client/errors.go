package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	ErrUnavailable           = errors.New("server unavailable")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrTimeout               = errors.New("request timed out")
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// NetworkError reports that the request never produced an HTTP response:
// no connectivity, DNS failure, refused connection or timeout.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: cannot reach the server, check your internet connection: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return true
	case ErrTimeout:
		return e.Timeout()
	}
	return false
}

// Timeout reports whether the transport gave up waiting.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// SessionExpiredError is returned for every HTTP 401. SessionExpired is the
// marker consumers test; it is always true for errors built by this package.
type SessionExpiredError struct {
	SessionExpired bool
	Message        string
}

func (e *SessionExpiredError) Error() string {
	return "session expired, please log in again"
}

func (e *SessionExpiredError) Is(target error) bool { return target == ErrUnauthorized }

// HTTPError is a non-2xx response other than 401.
type HTTPError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
}

// Reason is the most specific message available: the server message, or
// the first field error when the server sent none.
func (e *HTTPError) Reason() string {
	if e.Message != http.StatusText(e.StatusCode) {
		return e.Message
	}
	if first := firstFieldError(e.Errors); first != "" {
		return first
	}
	return e.Message
}

// MalformedResponseError is a 2xx response whose body could not be decoded.
type MalformedResponseError struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response (http %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsSessionExpired reports whether err carries the session-expiry marker.
func IsSessionExpired(err error) bool {
	var se *SessionExpiredError
	return errors.As(err, &se) && se.SessionExpired
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// errorBody is the subset of the envelope read from error responses.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{StatusCode: status, Message: http.StatusText(status)}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			e.Message = eb.Message
		}
		e.Errors = eb.Errors
	}
	return e
}

func newSessionExpiredError(body []byte) *SessionExpiredError {
	e := &SessionExpiredError{SessionExpired: true}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		e.Message = eb.Message
	}
	return e
}
