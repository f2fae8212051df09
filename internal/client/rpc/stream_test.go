package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9046balaji/Heart-sub003/pkg/api"
)

// streamTestClient wires a client whose BaseURL points at server.
// The mocked transport serves the renewal path so 401 recovery works
// for streams dialed over the real HTTP client.
func streamTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	transport := &TransportMock{
		DoFunc: func(ctx context.Context, req *Request) (*Response, error) {
			if strings.HasSuffix(req.URL, DefaultRefreshPath) {
				return jsonResponse(http.StatusOK, api.TokenResponse{
					AccessToken:  "access-new",
					RefreshToken: "refresh-new",
				}), nil
			}
			return jsonResponse(http.StatusNotFound, nil), nil
		},
	}

	cfg := Config{
		BaseURL:        server.URL,
		Timeout:        time.Second,
		RetryBaseDelay: time.Millisecond,
		RetryJitter:    time.Millisecond,
	}
	return New(cfg, transport, testSession(t), nil, discardLogger())
}

func sseHandler(lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			_, _ = fmt.Fprintf(w, "%s\n\n", line)
			flusher.Flush()
		}
	}
}

func collectEvents(t *testing.T, events <-chan StreamEvent) []StreamEvent {
	t.Helper()

	var collected []StreamEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, event)
		case <-timeout:
			t.Fatal("timed out waiting for stream events")
		}
	}
}

func TestClient_Stream_EmitsTokens(t *testing.T) {
	server := httptest.NewServer(sseHandler(
		`data: {"token":"Take"}`,
		`data: {"token":" with"}`,
		`data: {"token":" food"}`,
		`data: [DONE]`,
	))
	defer server.Close()

	client := streamTestClient(t, server)
	events, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{
		Body: api.ChatRequest{SessionID: "session-1", Message: "how do I take aspirin?"},
	})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 4)

	var text strings.Builder
	for _, event := range collected[:3] {
		require.NoError(t, event.Err)
		text.WriteString(event.Token)
	}
	assert.Equal(t, "Take with food", text.String())
	assert.True(t, collected[3].Done)
}

func TestClient_Stream_DoneChunkEndsStream(t *testing.T) {
	server := httptest.NewServer(sseHandler(
		`data: {"token":"ok"}`,
		`data: {"done":true}`,
	))
	defer server.Close()

	client := streamTestClient(t, server)
	events, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 2)
	assert.Equal(t, "ok", collected[0].Token)
	assert.True(t, collected[1].Done)
}

func TestClient_Stream_EndWithoutMarkerIsDone(t *testing.T) {
	server := httptest.NewServer(sseHandler(`data: {"token":"partial"}`))
	defer server.Close()

	client := streamTestClient(t, server)
	events, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 2)
	assert.Equal(t, "partial", collected[0].Token)
	assert.True(t, collected[1].Done)
}

func TestClient_Stream_Offline(t *testing.T) {
	server := httptest.NewServer(sseHandler())
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, &TransportMock{}, testSession(t), func() bool { return false }, discardLogger())

	_, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{})
	require.Error(t, err)
	assert.True(t, IsOffline(err))
}

func TestClient_Stream_SetupFailureIsSynchronous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := streamTestClient(t, server)
	_, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{})
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, ClassHTTP, cerr.Class)
	assert.Equal(t, http.StatusServiceUnavailable, cerr.Status)
}

func TestClient_Stream_RenewsSessionOn401(t *testing.T) {
	var dials int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials++
		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sseHandler(`data: [DONE]`)(w, r)
	}))
	defer server.Close()

	client := streamTestClient(t, server)
	client.Session().SetCredential(context.Background(), "access-old", "refresh-old")

	events, err := client.Stream(context.Background(), "/api/v1/chat/stream", CallOptions{})
	require.NoError(t, err)

	collected := collectEvents(t, events)
	require.Len(t, collected, 1)
	assert.True(t, collected[0].Done)

	// One rejected dial, one renewed redial
	assert.Equal(t, 2, dials)
	assert.Equal(t, "access-new", client.Session().AccessToken(context.Background()))
}

func TestClient_Stream_CancelStopsDelivery(t *testing.T) {
	firstSent := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		_, _ = fmt.Fprint(w, "data: {\"token\":\"first\"}\n\n")
		flusher.Flush()
		close(firstSent)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := streamTestClient(t, server)
	events, err := client.Stream(ctx, "/api/v1/chat/stream", CallOptions{})
	require.NoError(t, err)

	first := <-events
	assert.Equal(t, "first", first.Token)

	<-firstSent
	cancel()

	// The channel closes once cancellation propagates; any trailing
	// event is the classified abort.
	for event := range events {
		if event.Err != nil {
			assert.Equal(t, ClassTimeout, ClassOf(event.Err))
		}
	}
}
