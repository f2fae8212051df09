package netmon

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMonitor_StartsOnline(t *testing.T) {
	m := New("http://backend/api/v1/health", 0, discardLogger())
	assert.True(t, m.Online())
}

func TestMonitor_SetOnline(t *testing.T) {
	m := New("http://backend/api/v1/health", 0, discardLogger())

	m.SetOnline(false)
	assert.False(t, m.Online())

	m.SetOnline(true)
	assert.True(t, m.Online())
}

func TestMonitor_SubscribeReceivesTransitions(t *testing.T) {
	m := New("http://backend/api/v1/health", 0, discardLogger())
	sub := m.Subscribe()

	m.SetOnline(false)
	select {
	case online := <-sub:
		assert.False(t, online)
	case <-time.After(time.Second):
		t.Fatal("no transition delivered")
	}

	m.SetOnline(true)
	select {
	case online := <-sub:
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("no transition delivered")
	}
}

func TestMonitor_NoNotificationWithoutChange(t *testing.T) {
	m := New("http://backend/api/v1/health", 0, discardLogger())
	sub := m.Subscribe()

	// Already online; setting online again is not a transition
	m.SetOnline(true)

	select {
	case <-sub:
		t.Fatal("unexpected notification")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitor_SlowSubscriberKeepsLatest(t *testing.T) {
	m := New("http://backend/api/v1/health", 0, discardLogger())
	sub := m.Subscribe()

	// Nobody reading: the buffered channel holds the first transition
	// and later ones are dropped rather than blocking the monitor
	m.SetOnline(false)
	m.SetOnline(true)
	m.SetOnline(false)

	online := <-sub
	assert.False(t, online)
}

func TestMonitor_ProbeFlipsState(t *testing.T) {
	var healthy bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			panic(http.ErrAbortHandler)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New(server.URL, time.Hour, discardLogger())

	// Aborted connection reads as offline
	m.probe(context.Background())
	require.False(t, m.Online())

	healthy = true
	m.probe(context.Background())
	assert.True(t, m.Online())
}

func TestMonitor_ProbeTreatsServerErrorAsOnline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	m := New(server.URL, time.Hour, discardLogger())
	m.SetOnline(false)

	// A 5xx still proves the network path is up
	m.probe(context.Background())
	assert.True(t, m.Online())
}

func TestMonitor_ProbeUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := New(url, time.Hour, discardLogger())
	m.probe(context.Background())
	assert.False(t, m.Online())
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New(server.URL, 10*time.Millisecond, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
