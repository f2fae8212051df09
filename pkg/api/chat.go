package api

// ChatRequest represents a message sent to the assistant
type ChatRequest struct {
	SessionID string `json:"session_id"` // client-generated conversation id (UUID)
	Message   string `json:"message"`
}

// ChatChunk is one server-sent fragment of a streaming assistant reply.
// The stream carries chunks as SSE "data:" lines; the final chunk has
// Done set and an empty Token.
type ChatChunk struct {
	Token string `json:"token"`
	Done  bool   `json:"done,omitempty"`
}
