// Package session owns the client credential pair and its expiry checks.
//
// The store is single-writer by convention: only login, logout and the
// RPC client's token renewal flow call SetCredential/Clear. Readers go
// through AccessToken/RefreshToken/IsExpired.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/9046balaji/Heart-sub003/internal/client/storage"
)

// ExpiryMargin is the safety window subtracted from the token expiry.
// A token within the margin is treated as expired so it is never sent
// on a call that could outlive it mid-flight.
const ExpiryMargin = 60 * time.Second

// Store holds the current access/refresh credential pair.
type Store struct {
	storage storage.CredentialStorage
	logger  *slog.Logger

	mu     sync.RWMutex
	cached *storage.CredentialData // nil until loaded; reloaded on every write
	loaded bool
}

// New creates a session store backed by durable credential storage.
func New(credStorage storage.CredentialStorage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		storage: credStorage,
		logger:  logger,
	}
}

// AccessToken returns the current access token, or "" when none is stored.
func (s *Store) AccessToken(ctx context.Context) string {
	cred := s.credential(ctx)
	if cred == nil {
		return ""
	}
	return cred.AccessToken
}

// RefreshToken returns the current refresh token, or "" when none is stored.
func (s *Store) RefreshToken(ctx context.Context) string {
	cred := s.credential(ctx)
	if cred == nil {
		return ""
	}
	return cred.RefreshToken
}

// IsExpired reports whether the access token is missing or expires within
// the safety margin.
func (s *Store) IsExpired(ctx context.Context) bool {
	cred := s.credential(ctx)
	if cred == nil || cred.AccessToken == "" {
		return true
	}
	expiry := time.Unix(cred.AccessTokenExpiry, 0)
	return !time.Now().Before(expiry.Add(-ExpiryMargin))
}

// SetCredential persists a new credential pair, decoding the access
// token's exp claim to populate the expiry. Failures are logged rather
// than returned: a broken persist must not crash the login or renewal
// path, it only means the session will look expired on the next check.
func (s *Store) SetCredential(ctx context.Context, accessToken, refreshToken string) {
	expiry, err := decodeExpiry(accessToken)
	if err != nil {
		s.logger.Warn("failed to decode access token expiry, treating as expired", "error", err)
		expiry = 0
	}

	cred := &storage.CredentialData{
		AccessToken:       accessToken,
		RefreshToken:      refreshToken,
		AccessTokenExpiry: expiry,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.SaveCredential(ctx, cred); err != nil {
		s.logger.Error("failed to persist credential", "error", err)
	}
	s.cached = cred
	s.loaded = true
}

// Clear removes all credential state. Idempotent: clearing an empty
// store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	s.loaded = true

	if err := s.storage.DeleteCredential(ctx); err != nil && !errors.Is(err, storage.ErrCredentialNotFound) {
		return err
	}
	return nil
}

// credential returns the current credential, loading it from storage on
// first use. Returns nil when no credential is stored.
func (s *Store) credential(ctx context.Context) *storage.CredentialData {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.cached
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.cached
	}

	cred, err := s.storage.GetCredential(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrCredentialNotFound) {
			s.logger.Warn("failed to load credential from storage", "error", err)
			// Leave loaded unset so a later read can retry the load
			return nil
		}
		cred = nil
	}

	s.cached = cred
	s.loaded = true
	return s.cached
}

// decodeExpiry extracts the exp claim from a JWT access token without
// verifying the signature. Verification is the server's job; the client
// only needs the expiry for its refresh scheduling.
func decodeExpiry(accessToken string) (int64, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return 0, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return 0, err
	}
	if exp == nil {
		return 0, errors.New("token has no exp claim")
	}

	return exp.Unix(), nil
}
