package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/9046balaji/Heart-sub003/internal/client/storage"
)

var credentialKey = []byte("current")

// Compile-time check that Storage implements CredentialStorage
var _ storage.CredentialStorage = (*Storage)(nil)

// SaveCredential stores the credential pair, replacing any previous one
func (s *Storage) SaveCredential(ctx context.Context, cred *storage.CredentialData) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		data, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("failed to marshal credential: %w", err)
		}

		if err := bucket.Put(credentialKey, data); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}

		return nil
	})
}

// GetCredential retrieves the stored credential pair
func (s *Storage) GetCredential(ctx context.Context) (*storage.CredentialData, error) {
	var cred *storage.CredentialData

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		data := bucket.Get(credentialKey)
		if data == nil {
			return storage.ErrCredentialNotFound
		}

		cred = &storage.CredentialData{}
		if err := json.Unmarshal(data, cred); err != nil {
			return fmt.Errorf("failed to unmarshal credential: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return cred, nil
}

// DeleteCredential removes the stored credential pair (logout).
// Deleting an absent credential is not an error, so the session clear
// path stays idempotent.
func (s *Storage) DeleteCredential(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredential)
		if bucket == nil {
			return fmt.Errorf("credential bucket not found")
		}

		if err := bucket.Delete(credentialKey); err != nil {
			return fmt.Errorf("failed to delete credential: %w", err)
		}

		return nil
	})
}
