package models

import (
	"encoding/json"
	"time"
)

// ActionKind identifies the type of a queued mutation
type ActionKind string

const (
	ActionAdd    ActionKind = "add"
	ActionUpdate ActionKind = "update"
	ActionDelete ActionKind = "delete"
)

// QueuedAction is one pending mutation in the offline queue.
// Actions are persisted in enqueue order and replayed strictly FIFO:
// an update queued after an add for the same LocalID must not run before
// the add has confirmed a server identity.
type QueuedAction struct {
	LocalID    string          `json:"local_id"` // identity of the targeted record at enqueue time
	Kind       ActionKind      `json:"kind"`
	Payload    json.RawMessage `json:"payload"` // serialized Medication
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Medication deserializes the action payload.
func (a *QueuedAction) Medication() (*Medication, error) {
	var med Medication
	if err := json.Unmarshal(a.Payload, &med); err != nil {
		return nil, err
	}
	return &med, nil
}

// NewQueuedAction serializes med into a pending action.
func NewQueuedAction(kind ActionKind, med *Medication) (*QueuedAction, error) {
	payload, err := json.Marshal(med)
	if err != nil {
		return nil, err
	}
	return &QueuedAction{
		LocalID:    med.Key(),
		Kind:       kind,
		Payload:    payload,
		EnqueuedAt: time.Now(),
	}, nil
}
