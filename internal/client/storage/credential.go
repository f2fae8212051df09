package storage

import "context"

//go:generate go tool moq -out credential_mock.go . CredentialStorage

// CredentialData represents the persisted credential pair.
// Tokens are stored as issued by the server; AccessTokenExpiry is the
// decoded exp claim of the access token in epoch seconds (0 when the
// token could not be decoded, which callers treat as already expired).
type CredentialData struct {
	AccessToken       string `json:"access_token"`
	RefreshToken      string `json:"refresh_token"`
	AccessTokenExpiry int64  `json:"access_token_expiry"`
}

// CredentialStorage defines the durable key-value boundary for the
// session credential. Single-writer by convention: only login, logout
// and the token renewal flow write it.
type CredentialStorage interface {
	// SaveCredential stores the credential pair, replacing any previous one
	SaveCredential(ctx context.Context, cred *CredentialData) error

	// GetCredential retrieves the stored credential pair.
	// Returns ErrCredentialNotFound if nothing is stored.
	GetCredential(ctx context.Context) (*CredentialData, error)

	// DeleteCredential removes the stored credential pair (logout).
	// Deleting an absent credential is not an error.
	DeleteCredential(ctx context.Context) error
}
