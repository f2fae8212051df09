package cli

import (
	"context"
	"fmt"
	"strings"
)

// RunChat sends one message to the assistant and prints the streamed
// reply token by token.
func (c *Cli) RunChat(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chat <message>")
	}
	message := strings.Join(args, " ")

	events, err := c.chatService.Ask(ctx, message)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}

	for event := range events {
		switch {
		case event.Err != nil:
			c.io.Println("")
			return fmt.Errorf("stream interrupted: %w", event.Err)
		case event.Done:
			c.io.Println("")
			return nil
		default:
			c.io.Printf("%s", event.Token)
		}
	}

	c.io.Println("")
	return nil
}
