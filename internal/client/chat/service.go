// Package chat streams assistant replies over the authenticated RPC
// client.
package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/9046balaji/Heart-sub003/internal/client/rpc"
	"github.com/9046balaji/Heart-sub003/pkg/api"
)

const streamPath = "/api/v1/chat/stream"

// Streamer is the slice of the RPC client the chat service depends on
type Streamer interface {
	Stream(ctx context.Context, endpoint string, opts rpc.CallOptions) (<-chan rpc.StreamEvent, error)
}

// Service holds one assistant conversation
type Service struct {
	client    Streamer
	sessionID string
}

// NewService creates a chat service with a fresh conversation id
func NewService(client Streamer) *Service {
	return &Service{
		client:    client,
		sessionID: uuid.New().String(),
	}
}

// SessionID returns the conversation identifier
func (s *Service) SessionID() string {
	return s.sessionID
}

// Ask sends a message and returns the incremental reply stream.
func (s *Service) Ask(ctx context.Context, message string) (<-chan rpc.StreamEvent, error) {
	return s.client.Stream(ctx, streamPath, rpc.CallOptions{
		Body: api.ChatRequest{
			SessionID: s.sessionID,
			Message:   message,
		},
	})
}
