package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/9046balaji/Heart-sub003/pkg/api"
)

// renewSession exchanges the refresh token for a new credential pair.
//
// Single-flight: concurrent 401s share one renewal and every waiter
// observes the same outcome. On success the new credential is persisted
// and the triggering call is replayed by attempt. On failure the session
// store is cleared and all waiters receive ClassSessionExpired.
func (c *Client) renewSession(ctx context.Context) error {
	_, err, _ := c.renewal.Do("renew", func() (any, error) {
		// Detach from the triggering caller so one caller's cancellation
		// does not fail every waiter; the renewal carries its own deadline.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
		defer cancel()

		refreshToken := c.session.RefreshToken(rctx)
		if refreshToken == "" {
			return nil, c.expireSession(rctx, errors.New("no refresh token"))
		}

		body, err := json.Marshal(api.RefreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, c.expireSession(rctx, fmt.Errorf("failed to marshal refresh request: %w", err))
		}

		req := &Request{
			Method: http.MethodPost,
			URL:    c.cfg.BaseURL + c.cfg.RefreshPath,
			Header: http.Header{"Content-Type": []string{"application/json"}},
			Body:   body,
		}

		resp, err := c.transport.Do(rctx, req)
		if err != nil {
			return nil, c.expireSession(rctx, fmt.Errorf("renewal request failed: %w", err))
		}
		if resp.Status < 200 || resp.Status >= 300 {
			return nil, c.expireSession(rctx, fmt.Errorf("renewal rejected with status %d", resp.Status))
		}

		var tokens api.TokenResponse
		if err := json.Unmarshal(resp.Body, &tokens); err != nil {
			return nil, c.expireSession(rctx, fmt.Errorf("failed to decode renewal response: %w", err))
		}

		c.session.SetCredential(rctx, tokens.AccessToken, tokens.RefreshToken)
		c.logger.Debug("session renewed")
		return nil, nil
	})
	return err
}

// expireSession clears the credential state and returns the terminal
// session-expired error. Renewal is never retried; the user has to
// re-authenticate.
func (c *Client) expireSession(ctx context.Context, cause error) error {
	if err := c.session.Clear(ctx); err != nil {
		c.logger.Warn("failed to clear session", "error", err)
	}
	c.logger.Info("session expired", "cause", cause)
	return &Error{Class: ClassSessionExpired, Err: cause}
}
