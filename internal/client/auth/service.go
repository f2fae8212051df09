// Package auth implements the client login/logout flows on top of the
// resilient RPC client and the session store.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/9046balaji/Heart-sub003/internal/client/rpc"
	"github.com/9046balaji/Heart-sub003/internal/client/session"
	"github.com/9046balaji/Heart-sub003/internal/validation"
	"github.com/9046balaji/Heart-sub003/pkg/api"
)

const (
	loginPath  = "/api/v1/auth/login"
	logoutPath = "/api/v1/auth/logout"
)

// Service provides authentication operations
type Service struct {
	client  *rpc.Client
	session *session.Store
	logger  *slog.Logger
}

// NewService creates a new auth service
func NewService(client *rpc.Client, sess *session.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  client,
		session: sess,
		logger:  logger,
	}
}

// Login authenticates the user and stores the issued credential pair.
// Login itself is unauthenticated and never deduplicated or replayed on
// a 401.
func (s *Service) Login(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	res, err := s.client.Call(ctx, loginPath, rpc.CallOptions{
		Method:   http.MethodPost,
		Body:     api.LoginRequest{Username: username, Password: password},
		SkipAuth: true,
		Retries:  -1, // credentials should not be replayed on flaky links
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	var tokens api.TokenResponse
	if err := res.Decode(&tokens); err != nil {
		return fmt.Errorf("login response malformed: %w", err)
	}

	s.session.SetCredential(ctx, tokens.AccessToken, tokens.RefreshToken)
	s.logger.Info("logged in", "username", username)
	return nil
}

// Logout notifies the server (best effort) and always clears local
// credential state, even when the server is unreachable.
func (s *Service) Logout(ctx context.Context) error {
	if _, err := s.client.Call(ctx, logoutPath, rpc.CallOptions{
		Method:  http.MethodPost,
		Retries: -1,
	}); err != nil {
		s.logger.Warn("failed to logout on server", "error", err)
	}

	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear local session: %w", err)
	}
	return nil
}

// Status describes the current session
type Status struct {
	Authenticated bool
	Expired       bool
}

// Status reports whether a usable session exists
func (s *Service) Status(ctx context.Context) Status {
	token := s.session.AccessToken(ctx)
	if token == "" {
		return Status{}
	}
	return Status{
		Authenticated: true,
		Expired:       s.session.IsExpired(ctx),
	}
}
