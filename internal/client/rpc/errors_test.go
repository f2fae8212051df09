package rpc

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		name      string
		err       *Error
		retryable bool
	}{
		{name: "network failure", err: &Error{Class: ClassNetwork}, retryable: true},
		{name: "timeout", err: &Error{Class: ClassTimeout}, retryable: true},
		{name: "server error 500", err: &Error{Class: ClassHTTP, Status: http.StatusInternalServerError}, retryable: true},
		{name: "server error 503", err: &Error{Class: ClassHTTP, Status: http.StatusServiceUnavailable}, retryable: true},
		{name: "request timeout 408", err: &Error{Class: ClassHTTP, Status: http.StatusRequestTimeout}, retryable: true},
		{name: "rate limited 429", err: &Error{Class: ClassHTTP, Status: http.StatusTooManyRequests}, retryable: true},
		{name: "bad request 400", err: &Error{Class: ClassHTTP, Status: http.StatusBadRequest}, retryable: false},
		{name: "not found 404", err: &Error{Class: ClassHTTP, Status: http.StatusNotFound}, retryable: false},
		{name: "validation 422", err: &Error{Class: ClassHTTP, Status: http.StatusUnprocessableEntity}, retryable: false},
		{name: "offline", err: &Error{Class: ClassOffline}, retryable: false},
		{name: "session expired", err: &Error{Class: ClassSessionExpired}, retryable: false},
		{name: "unknown", err: &Error{Class: ClassUnknown}, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, tt.err.Retryable())
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestError_Message(t *testing.T) {
	httpErr := &Error{Class: ClassHTTP, Status: 422, Body: []byte(`{"error":"dose is required"}`)}
	assert.Contains(t, httpErr.Error(), "422")
	assert.Contains(t, httpErr.Error(), "dose is required")

	netErr := &Error{Class: ClassNetwork, Err: errors.New("connection refused")}
	assert.Contains(t, netErr.Error(), "network")
	assert.Contains(t, netErr.Error(), "connection refused")

	offline := &Error{Class: ClassOffline}
	assert.Equal(t, "offline", offline.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Class: ClassNetwork, Err: cause}
	assert.ErrorIs(t, err, cause)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassOffline, ClassOf(&Error{Class: ClassOffline}))
	assert.Equal(t, ClassUnknown, ClassOf(errors.New("plain error")))
	assert.Equal(t, ClassUnknown, ClassOf(nil))

	// Classification survives wrapping
	wrapped := fmt.Errorf("call failed: %w", &Error{Class: ClassSessionExpired})
	assert.Equal(t, ClassSessionExpired, ClassOf(wrapped))
	assert.True(t, IsSessionExpired(wrapped))
}
