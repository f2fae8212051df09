// Package queue wraps the persisted offline mutation log for one
// mutation domain. The log is append-only with respect to ordering and
// is replayed strictly FIFO.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/9046balaji/Heart-sub003/internal/client/storage"
	"github.com/9046balaji/Heart-sub003/internal/models"
)

// Queue is the persisted FIFO log of pending mutations for one domain
// (e.g. "medications").
type Queue struct {
	storage storage.QueueStorage
	domain  string
}

// New creates a queue over the given storage for one mutation domain.
func New(queueStorage storage.QueueStorage, domain string) *Queue {
	return &Queue{
		storage: queueStorage,
		domain:  domain,
	}
}

// Domain returns the mutation domain this queue serves
func (q *Queue) Domain() string {
	return q.domain
}

// Append adds an action to the tail of the queue, stamping EnqueuedAt
// when unset.
func (q *Queue) Append(ctx context.Context, action *models.QueuedAction) error {
	if action.EnqueuedAt.IsZero() {
		action.EnqueuedAt = time.Now()
	}
	if err := q.storage.AppendAction(ctx, q.domain, action); err != nil {
		return fmt.Errorf("failed to enqueue action: %w", err)
	}
	return nil
}

// Pending returns all queued actions in FIFO order
func (q *Queue) Pending(ctx context.Context) ([]storage.QueuedItem, error) {
	items, err := q.storage.ListActions(ctx, q.domain)
	if err != nil {
		return nil, fmt.Errorf("failed to list queued actions: %w", err)
	}
	return items, nil
}

// Update overwrites a pending action in place, preserving its replay
// position.
func (q *Queue) Update(ctx context.Context, seq uint64, action *models.QueuedAction) error {
	if err := q.storage.UpdateAction(ctx, q.domain, seq, action); err != nil {
		return fmt.Errorf("failed to update queued action: %w", err)
	}
	return nil
}

// Remove deletes one replayed action by its sequence number
func (q *Queue) Remove(ctx context.Context, seq uint64) error {
	if err := q.storage.RemoveAction(ctx, q.domain, seq); err != nil {
		return fmt.Errorf("failed to remove queued action: %w", err)
	}
	return nil
}

// Len returns the number of pending actions
func (q *Queue) Len(ctx context.Context) (int, error) {
	count, err := q.storage.CountActions(ctx, q.domain)
	if err != nil {
		return 0, fmt.Errorf("failed to count queued actions: %w", err)
	}
	return count, nil
}
