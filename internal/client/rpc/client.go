// Package rpc implements the resilient RPC client: every call gets
// offline short-circuiting, GET deduplication, bounded retry with
// jittered exponential backoff, per-call timeouts and transparent
// session-token renewal on 401.
package rpc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/9046balaji/Heart-sub003/internal/client/session"
)

// Client defaults
const (
	DefaultTimeout        = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 500 * time.Millisecond
	DefaultRetryJitter    = 250 * time.Millisecond
	DefaultRefreshPath    = "/api/v1/auth/refresh"
)

// Config holds client-wide settings. Zero values fall back to the
// defaults above.
type Config struct {
	BaseURL        string
	Timeout        time.Duration // default per-call timeout
	MaxRetries     uint64        // retry budget for transient failures
	RetryBaseDelay time.Duration // base of the exponential backoff
	RetryJitter    time.Duration // uniform jitter added to each delay
	RefreshPath    string        // token renewal endpoint
}

// CallOptions control a single Call. The zero value issues an
// authenticated GET with the client's default timeout and retry budget.
type CallOptions struct {
	Method    string        // HTTP method, default GET
	Headers   http.Header   // extra request headers
	Body      any           // JSON-marshaled when non-nil
	Timeout   time.Duration // per-attempt timeout; 0 uses the default (set higher for known-slow calls)
	SkipAuth  bool          // do not attach the bearer credential
	SkipDedup bool          // opt out of GET deduplication
	Retries   int           // max retries; 0 uses the config budget, negative disables retries
}

// Result is the successful outcome of a Call
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the response body into v
func (r *Result) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Client is the resilient RPC client. Construct one per backend with New;
// it is an explicitly owned instance, not a package singleton, so tests
// can build isolated clients.
type Client struct {
	cfg       Config
	transport Transport
	session   *session.Store
	online    func() bool // connectivity signal; nil means always online
	logger    *slog.Logger

	inflight singleflight.Group // at most one live GET per pendingKey
	renewal  singleflight.Group // at most one token renewal process-wide

	streamClient *http.Client

	reqInterceptors  []RequestInterceptor
	respInterceptors []ResponseInterceptor
}

// New creates a resilient RPC client over the given transport.
// online reports the device connectivity signal; when it returns false
// calls fail fast with ClassOffline before touching the network.
func New(cfg Config, transport Transport, sess *session.Store, online func() bool, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.RetryJitter <= 0 {
		cfg.RetryJitter = DefaultRetryJitter
	}
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = DefaultRefreshPath
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		cfg:       cfg,
		transport: transport,
		session:   sess,
		online:    online,
		logger:    logger,
		// Streaming responses have no overall deadline; the context
		// governs their lifetime.
		streamClient: &http.Client{},
	}
}

// Session exposes the session store for login/logout flows
func (c *Client) Session() *session.Store {
	return c.session
}

// Call executes one logical request against endpoint and returns the
// decoded-ready result or a classified *Error.
func (c *Client) Call(ctx context.Context, endpoint string, opts CallOptions) (*Result, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body []byte
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Class: ClassUnknown, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		body = data
	}

	// The offline short-circuit runs before any transport dispatch so an
	// offline device fails in microseconds, not after a timeout.
	if c.online != nil && !c.online() {
		return nil, &Error{Class: ClassOffline}
	}

	// Only GETs are deduplicated: mutating requests are not idempotent
	// by default. Concurrent identical GETs share one outstanding future;
	// the registry entry is removed when that exact request settles.
	if method == http.MethodGet && !opts.SkipDedup {
		key := pendingKey(method, endpoint, body)
		v, err, shared := c.inflight.Do(key, func() (any, error) {
			return c.callWithRetry(ctx, method, endpoint, opts, body)
		})
		if shared {
			c.logger.Debug("request deduplicated", "method", method, "endpoint", endpoint)
		}
		if err != nil {
			return nil, err
		}
		return v.(*Result), nil
	}

	return c.callWithRetry(ctx, method, endpoint, opts, body)
}

// callWithRetry runs the bounded retry loop around single attempts.
// Only transient classes are retried; the final failure surfaces the
// original error after at most retries+1 attempts.
func (c *Client) callWithRetry(ctx context.Context, method, endpoint string, opts CallOptions, body []byte) (*Result, error) {
	retries := c.cfg.MaxRetries
	if opts.Retries > 0 {
		retries = uint64(opts.Retries)
	} else if opts.Retries < 0 {
		retries = 0
	}

	backoff := retry.WithMaxRetries(retries,
		retry.WithJitter(c.cfg.RetryJitter,
			retry.NewExponential(c.cfg.RetryBaseDelay)))

	var result *Result
	attempt := 0
	renewed := false
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		res, err := c.attempt(ctx, method, endpoint, opts, body, &renewed)
		if err != nil {
			if IsRetryable(err) {
				c.logger.Debug("transient failure, will retry",
					"method", method,
					"endpoint", endpoint,
					"attempt", attempt,
					"error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		var cerr *Error
		if !errors.As(err, &cerr) {
			// Caller cancellation during a backoff wait surfaces as a
			// bare context error; classify it like any other abort.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, &Error{Class: ClassTimeout, Err: err}
			}
			return nil, &Error{Class: ClassUnknown, Err: err}
		}
		return nil, err
	}

	return result, nil
}

// attempt performs one dispatch including the 401 renew-and-replay.
// renewed is shared across the attempts of one logical call: renewal runs
// at most once per call, and the original request is replayed exactly
// once with the new token. A 401 after a successful renewal is terminal.
func (c *Client) attempt(ctx context.Context, method, endpoint string, opts CallOptions, body []byte, renewed *bool) (*Result, error) {
	token := ""
	if !opts.SkipAuth {
		token = c.session.AccessToken(ctx)
	}

	resp, err := c.dispatch(ctx, method, endpoint, opts, body, token)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized && !opts.SkipAuth && !*renewed {
		*renewed = true
		if err := c.renewSession(ctx); err != nil {
			return nil, err
		}
		resp, err = c.dispatch(ctx, method, endpoint, opts, body, c.session.AccessToken(ctx))
		if err != nil {
			return nil, err
		}
	}

	if resp.Status < 200 || resp.Status >= 300 {
		return nil, &Error{Class: ClassHTTP, Status: resp.Status, Body: resp.Body}
	}

	if err := c.applyResponseInterceptors(resp); err != nil {
		return nil, err
	}

	return &Result{Status: resp.Status, Header: resp.Header, Body: resp.Body}, nil
}

// dispatch sends one request through the interceptor pipeline and the
// transport, bounded by the per-attempt timeout.
func (c *Client) dispatch(ctx context.Context, method, endpoint string, opts CallOptions, body []byte, token string) (*Response, error) {
	req := &Request{
		Method: method,
		URL:    c.cfg.BaseURL + endpoint,
		Header: make(http.Header),
		Body:   body,
	}
	for key, values := range opts.Headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.applyRequestInterceptors(req); err != nil {
		return nil, err
	}

	// The credential is attached after the interceptor pipeline so a
	// header-rewriting interceptor cannot clobber a freshly renewed token.
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.transport.Do(tctx, req)
}

// pendingKey derives the deterministic dedup key for a request from its
// method, endpoint and serialized body.
func pendingKey(method, endpoint string, body []byte) string {
	sum := sha256.Sum256(body)
	return method + " " + endpoint + " " + hex.EncodeToString(sum[:])
}
