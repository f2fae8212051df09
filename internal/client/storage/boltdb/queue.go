package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/9046balaji/Heart-sub003/internal/client/storage"
	"github.com/9046balaji/Heart-sub003/internal/models"
)

// Compile-time check that Storage implements QueueStorage
var _ storage.QueueStorage = (*Storage)(nil)

// AppendAction appends an action to the tail of the domain queue.
// Keys are big-endian uint64 sequence numbers from the bucket's
// NextSequence, so a cursor walk yields strict FIFO order.
func (s *Storage) AppendAction(ctx context.Context, domain string, action *models.QueuedAction) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.domainBucket(tx, domain)
		if err != nil {
			return err
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		data, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("failed to marshal action: %w", err)
		}

		if err := bucket.Put(itob(seq), data); err != nil {
			return fmt.Errorf("failed to append action: %w", err)
		}

		return nil
	})
}

// ListActions returns all pending actions in FIFO order
func (s *Storage) ListActions(ctx context.Context, domain string) ([]storage.QueuedItem, error) {
	var items []storage.QueuedItem

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue).Bucket([]byte(domain))
		if bucket == nil {
			// No bucket means nothing was ever queued for this domain
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			action := &models.QueuedAction{}
			if err := json.Unmarshal(v, action); err != nil {
				return fmt.Errorf("failed to unmarshal action: %w", err)
			}
			items = append(items, storage.QueuedItem{
				Seq:    binary.BigEndian.Uint64(k),
				Action: action,
			})
			return nil
		})
	})

	if err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateAction overwrites a pending action under its existing sequence
// key, so the rewrite never changes the replay order.
func (s *Storage) UpdateAction(ctx context.Context, domain string, seq uint64, action *models.QueuedAction) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue).Bucket([]byte(domain))
		if bucket == nil {
			return storage.ErrActionNotFound
		}

		key := itob(seq)
		if bucket.Get(key) == nil {
			return storage.ErrActionNotFound
		}

		data, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("failed to marshal action: %w", err)
		}

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to update action: %w", err)
		}

		return nil
	})
}

// RemoveAction removes one action by its sequence number
func (s *Storage) RemoveAction(ctx context.Context, domain string, seq uint64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue).Bucket([]byte(domain))
		if bucket == nil {
			return storage.ErrActionNotFound
		}

		key := itob(seq)
		if bucket.Get(key) == nil {
			return storage.ErrActionNotFound
		}

		if err := bucket.Delete(key); err != nil {
			return fmt.Errorf("failed to delete action: %w", err)
		}

		return nil
	})
}

// CountActions returns the number of pending actions in the domain
func (s *Storage) CountActions(ctx context.Context, domain string) (int, error) {
	count := 0

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQueue).Bucket([]byte(domain))
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}

// domainBucket returns the nested queue bucket for a domain, creating it
// if needed. Must be called inside an Update transaction.
func (s *Storage) domainBucket(tx *bbolt.Tx, domain string) (*bbolt.Bucket, error) {
	parent := tx.Bucket(bucketQueue)
	if parent == nil {
		return nil, fmt.Errorf("queue bucket not found")
	}

	bucket, err := parent.CreateBucketIfNotExists([]byte(domain))
	if err != nil {
		return nil, fmt.Errorf("failed to create domain bucket %q: %w", domain, err)
	}

	return bucket, nil
}

// itob converts a sequence number to a sortable big-endian key
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
