package rpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

//go:generate go tool moq -out transport_mock.go . Transport

// Request is one normalized outgoing request. Interceptors may rewrite
// headers and body before dispatch.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response is the normalized transport result for a completed exchange,
// regardless of status code.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport executes a single network request. It performs no retries,
// no deduplication and no authentication - those belong to the client.
// The context carries the per-attempt deadline; exceeding it aborts the
// underlying call.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// httpTransport is the net/http backed Transport
type httpTransport struct {
	client *http.Client
}

// NewTransport creates the default HTTP transport. Timeouts are driven
// entirely by the caller's context so that caller-supplied cancellation
// and client-imposed deadlines behave identically.
func NewTransport() Transport {
	return &httpTransport{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Do executes the request and classifies transport-level failures.
// A non-2xx status is returned as a Response, not an error: status
// handling is client policy.
func (t *httpTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, &Error{Class: ClassUnknown, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   respBody,
	}, nil
}

// classifyTransportError maps a net/http failure onto the taxonomy.
// Deadline expiry and caller cancellation are both ClassTimeout: the
// contract is that they abort the call identically.
func classifyTransportError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		ctx.Err() != nil {
		return &Error{Class: ClassTimeout, Err: err}
	}
	return &Error{Class: ClassNetwork, Err: err}
}
