package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestNetworkError_Is(t *testing.T) {
	refused := &NetworkError{Method: "GET", Endpoint: "/topics", Err: errors.New("connection refused")}
	assert.ErrorIs(t, refused, ErrUnavailable)
	assert.NotErrorIs(t, refused, ErrTimeout)

	deadline := &NetworkError{Method: "GET", Endpoint: "/health", Err: fmt.Errorf("get: %w", context.DeadlineExceeded)}
	assert.ErrorIs(t, deadline, ErrTimeout)
	assert.ErrorIs(t, deadline, context.DeadlineExceeded)

	netTimeout := &NetworkError{Method: "GET", Endpoint: "/health", Err: timeoutErr{}}
	assert.True(t, netTimeout.Timeout())
}

func TestClassifiers(t *testing.T) {
	se := newSessionExpiredError([]byte(`{"message":"Token expired"}`))
	assert.True(t, se.SessionExpired)
	assert.Equal(t, "Token expired", se.Message)
	assert.Equal(t, "session expired, please log in again", se.Error())

	wrapped := fmt.Errorf("refresh: %w", se)
	assert.True(t, IsSessionExpired(wrapped))
	assert.False(t, IsNetworkError(wrapped))
	assert.False(t, IsSessionExpired(&SessionExpiredError{}))

	assert.True(t, IsNetworkError(fmt.Errorf("x: %w", &NetworkError{Err: errors.New("dns")})))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeSuccess, outcomeOf(nil))
	assert.Equal(t, outcomeNetworkError, outcomeOf(&NetworkError{Err: errors.New("x")}))
	assert.Equal(t, outcomeSessionExpired, outcomeOf(&SessionExpiredError{SessionExpired: true}))
	assert.Equal(t, outcomeHTTPError, outcomeOf(newHTTPError(http.StatusBadGateway, nil)))
	assert.Equal(t, outcomeMalformed, outcomeOf(&MalformedResponseError{Err: errors.New("x")}))
	assert.Equal(t, outcomeOther, outcomeOf(errors.New("x")))
}
