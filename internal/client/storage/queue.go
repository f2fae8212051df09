package storage

import (
	"context"

	"github.com/9046balaji/Heart-sub003/internal/models"
)

//go:generate go tool moq -out queue_mock.go . QueueStorage

// QueuedItem is a persisted action together with its queue sequence number.
// Sequence numbers are monotonically increasing within a domain and define
// the FIFO replay order.
type QueuedItem struct {
	Seq    uint64
	Action *models.QueuedAction
}

// QueueStorage persists the offline mutation log.
// Each mutation domain (e.g. "medications") has its own queue; ordering
// guarantees hold per domain only.
type QueueStorage interface {
	// AppendAction appends an action to the tail of the domain queue
	AppendAction(ctx context.Context, domain string, action *models.QueuedAction) error

	// ListActions returns all pending actions in FIFO order
	ListActions(ctx context.Context, domain string) ([]QueuedItem, error)

	// UpdateAction overwrites a pending action in place, keeping its
	// sequence number and therefore its replay position.
	// Returns ErrActionNotFound if no such action exists.
	UpdateAction(ctx context.Context, domain string, seq uint64, action *models.QueuedAction) error

	// RemoveAction removes one action by its sequence number.
	// Returns ErrActionNotFound if no such action exists.
	RemoveAction(ctx context.Context, domain string, seq uint64) error

	// CountActions returns the number of pending actions in the domain
	CountActions(ctx context.Context, domain string) (int, error)
}
