package rpc

import (
	"errors"
	"fmt"
)

// Class classifies a call failure for callers. The mutation coordinator
// uses it to decide between queue-for-replay and rollback-and-report.
type Class int

const (
	// ClassUnknown covers failures that fit no other class
	ClassUnknown Class = iota

	// ClassNetwork is a transport-level failure (DNS, connect, reset)
	ClassNetwork

	// ClassTimeout is a deadline or cancellation of the in-flight call
	ClassTimeout

	// ClassOffline means the connectivity signal reported offline and
	// the call was short-circuited before touching the network
	ClassOffline

	// ClassSessionExpired means token renewal failed and the session
	// was cleared; the user must re-authenticate
	ClassSessionExpired

	// ClassHTTP is a non-2xx response from the server
	ClassHTTP
)

// String returns a human-readable class name
func (c Class) String() string {
	switch c {
	case ClassNetwork:
		return "network"
	case ClassTimeout:
		return "timeout"
	case ClassOffline:
		return "offline"
	case ClassSessionExpired:
		return "session expired"
	case ClassHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// Error is the classified failure surfaced by Client.Call.
type Error struct {
	Class  Class
	Status int    // HTTP status code, set for ClassHTTP
	Body   []byte // response body, set for ClassHTTP
	Err    error  // underlying cause, may be nil
}

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Class {
	case ClassHTTP:
		return fmt.Sprintf("http error %d: %s", e.Status, string(e.Body))
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Class, e.Err)
		}
		return e.Class.String()
	}
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient and worth retrying
// with backoff: network failures, timeouts and HTTP 5xx/408/429.
// Offline is not retryable by the client - the connectivity observer
// decides when the network is back.
func (e *Error) Retryable() bool {
	switch e.Class {
	case ClassNetwork, ClassTimeout:
		return true
	case ClassHTTP:
		return e.Status >= 500 || e.Status == 408 || e.Status == 429
	default:
		return false
	}
}

// ClassOf extracts the failure class from any error returned by the
// client. Unclassified errors report ClassUnknown.
func ClassOf(err error) Class {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Class
	}
	return ClassUnknown
}

// IsRetryable reports whether err is a transient classified failure
func IsRetryable(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Retryable()
}

// IsOffline reports whether err is an offline short-circuit
func IsOffline(err error) bool {
	return ClassOf(err) == ClassOffline
}

// IsSessionExpired reports whether err is a terminal session expiry
func IsSessionExpired(err error) bool {
	return ClassOf(err) == ClassSessionExpired
}
