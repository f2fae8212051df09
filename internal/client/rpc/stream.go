package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/9046balaji/Heart-sub003/pkg/api"
)

// StreamEvent is one element of a streaming response: a token fragment,
// a terminal Done marker, or a terminal error.
type StreamEvent struct {
	Token string
	Done  bool
	Err   error
}

// Stream issues an authenticated streaming request and emits server-sent
// token events on the returned channel, for chat-style incremental
// responses. The channel closes after a Done or error event; cancel ctx
// to abort the stream early.
//
// Setup failures (offline, auth, bad status) are returned synchronously;
// mid-stream failures arrive as an event with Err set.
func (c *Client) Stream(ctx context.Context, endpoint string, opts CallOptions) (<-chan StreamEvent, error) {
	if c.online != nil && !c.online() {
		return nil, &Error{Class: ClassOffline}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodPost
	}

	var body []byte
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &Error{Class: ClassUnknown, Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		body = data
	}

	respBody, err := c.openStream(ctx, method, endpoint, opts, body)
	if err != nil {
		return nil, err
	}

	events := make(chan StreamEvent)
	go c.readStream(ctx, respBody, events)
	return events, nil
}

// openStream dials the streaming endpoint on the same authenticated
// footing as Call: bearer credential attached, one renewal and one
// replay on a 401.
func (c *Client) openStream(ctx context.Context, method, endpoint string, opts CallOptions, body []byte) (io.ReadCloser, error) {
	dial := func(token string) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, &Error{Class: ClassUnknown, Err: fmt.Errorf("failed to create request: %w", err)}
		}
		for key, values := range opts.Headers {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "text/event-stream")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.streamClient.Do(req)
		if err != nil {
			return nil, classifyTransportError(ctx, err)
		}
		return resp, nil
	}

	token := ""
	if !opts.SkipAuth {
		token = c.session.AccessToken(ctx)
	}

	resp, err := dial(token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !opts.SkipAuth {
		_ = resp.Body.Close()
		if err := c.renewSession(ctx); err != nil {
			return nil, err
		}
		resp, err = dial(c.session.AccessToken(ctx))
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &Error{Class: ClassHTTP, Status: resp.StatusCode, Body: respBody}
	}

	return resp.Body, nil
}

// readStream parses SSE "data:" lines into events until the stream ends
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, events chan<- StreamEvent) {
	defer close(events)
	defer func() {
		_ = body.Close()
	}()

	emit := func(event StreamEvent) bool {
		select {
		case events <- event:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			emit(StreamEvent{Done: true})
			return
		}

		var chunk api.ChatChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			emit(StreamEvent{Err: &Error{Class: ClassUnknown, Err: fmt.Errorf("failed to decode stream chunk: %w", err)}})
			return
		}
		if chunk.Done {
			emit(StreamEvent{Done: true})
			return
		}
		if !emit(StreamEvent{Token: chunk.Token}) {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		emit(StreamEvent{Err: classifyTransportError(ctx, err)})
		return
	}

	// Stream ended without an explicit done marker
	emit(StreamEvent{Done: true})
}
