package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9046balaji/Heart-sub003/internal/client/rpc"
	"github.com/9046balaji/Heart-sub003/internal/client/session"
	"github.com/9046balaji/Heart-sub003/internal/client/storage"
	"github.com/9046balaji/Heart-sub003/pkg/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSession(t *testing.T) *session.Store {
	t.Helper()

	var mu sync.Mutex
	var stored *storage.CredentialData
	mockStorage := &storage.CredentialStorageMock{
		SaveCredentialFunc: func(ctx context.Context, cred *storage.CredentialData) error {
			mu.Lock()
			defer mu.Unlock()
			stored = cred
			return nil
		},
		GetCredentialFunc: func(ctx context.Context) (*storage.CredentialData, error) {
			mu.Lock()
			defer mu.Unlock()
			if stored == nil {
				return nil, storage.ErrCredentialNotFound
			}
			return stored, nil
		},
		DeleteCredentialFunc: func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			stored = nil
			return nil
		},
	}
	return session.New(mockStorage, discardLogger())
}

func testService(t *testing.T, transport rpc.Transport) (*Service, *session.Store) {
	t.Helper()

	sess := testSession(t)
	client := rpc.New(rpc.Config{
		BaseURL:        "http://backend",
		Timeout:        time.Second,
		RetryBaseDelay: time.Millisecond,
		RetryJitter:    time.Millisecond,
	}, transport, sess, nil, discardLogger())
	return NewService(client, sess, discardLogger()), sess
}

func TestService_Login(t *testing.T) {
	transport := &rpc.TransportMock{
		DoFunc: func(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
			var loginReq api.LoginRequest
			require.NoError(t, json.Unmarshal(req.Body, &loginReq))
			assert.Equal(t, "alice", loginReq.Username)
			assert.Equal(t, "correct horse", loginReq.Password)

			// Login must never carry a stale credential
			assert.Empty(t, req.Header.Get("Authorization"))

			body, _ := json.Marshal(api.TokenResponse{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				ExpiresIn:    900,
			})
			return &rpc.Response{Status: http.StatusOK, Body: body}, nil
		},
	}
	service, sess := testService(t, transport)

	require.NoError(t, service.Login(context.Background(), "alice", "correct horse"))
	assert.Equal(t, "access-1", sess.AccessToken(context.Background()))
	assert.Equal(t, "refresh-1", sess.RefreshToken(context.Background()))
}

func TestService_Login_InvalidInput(t *testing.T) {
	transport := &rpc.TransportMock{}
	service, _ := testService(t, transport)

	assert.Error(t, service.Login(context.Background(), "a", "correct horse"))
	assert.Error(t, service.Login(context.Background(), "alice", "short"))

	// Rejected input never reaches the network
	assert.Empty(t, transport.DoCalls())
}

func TestService_Login_BadCredentials(t *testing.T) {
	transport := &rpc.TransportMock{
		DoFunc: func(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
			body, _ := json.Marshal(api.ErrorResponse{Error: "invalid credentials"})
			return &rpc.Response{Status: http.StatusUnauthorized, Body: body}, nil
		},
	}
	service, sess := testService(t, transport)

	err := service.Login(context.Background(), "alice", "wrong password")
	require.Error(t, err)
	assert.Equal(t, rpc.ClassHTTP, rpc.ClassOf(err))

	// No renewal attempt for an unauthenticated call: just the login POST
	assert.Len(t, transport.DoCalls(), 1)
	assert.Empty(t, sess.AccessToken(context.Background()))
}

func TestService_Login_NetworkFailureNotRetried(t *testing.T) {
	transport := &rpc.TransportMock{
		DoFunc: func(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
			return nil, &rpc.Error{Class: rpc.ClassNetwork, Err: errors.New("connection reset")}
		},
	}
	service, _ := testService(t, transport)

	err := service.Login(context.Background(), "alice", "correct horse")
	require.Error(t, err)

	// Credentials are submitted at most once
	assert.Len(t, transport.DoCalls(), 1)
}

func TestService_Logout(t *testing.T) {
	transport := &rpc.TransportMock{
		DoFunc: func(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
			return &rpc.Response{Status: http.StatusNoContent}, nil
		},
	}
	service, sess := testService(t, transport)
	sess.SetCredential(context.Background(), "access-1", "refresh-1")

	require.NoError(t, service.Logout(context.Background()))
	assert.Empty(t, sess.AccessToken(context.Background()))
}

func TestService_Logout_ClearsLocallyWhenServerUnreachable(t *testing.T) {
	transport := &rpc.TransportMock{
		DoFunc: func(ctx context.Context, req *rpc.Request) (*rpc.Response, error) {
			return nil, &rpc.Error{Class: rpc.ClassNetwork, Err: errors.New("connection refused")}
		},
	}
	service, sess := testService(t, transport)
	sess.SetCredential(context.Background(), "access-1", "refresh-1")

	// The server call is best effort; local state always clears
	require.NoError(t, service.Logout(context.Background()))
	assert.Empty(t, sess.AccessToken(context.Background()))
	assert.True(t, sess.IsExpired(context.Background()))
}

func TestService_Status(t *testing.T) {
	service, sess := testService(t, &rpc.TransportMock{})

	status := service.Status(context.Background())
	assert.False(t, status.Authenticated)

	sess.SetCredential(context.Background(), "access-1", "refresh-1")
	status = service.Status(context.Background())
	assert.True(t, status.Authenticated)
	// An opaque token has no decodable expiry and counts as expired
	assert.True(t, status.Expired)
}
