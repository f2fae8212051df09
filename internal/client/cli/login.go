package cli

import (
	"context"
	"fmt"
)

// RunLogin prompts for credentials and authenticates
func (c *Cli) RunLogin(ctx context.Context) error {
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if err := c.authService.Login(ctx, username, password); err != nil {
		return err
	}

	c.io.Println("✓ Logged in")
	return nil
}

// RunLogout clears the session
func (c *Cli) RunLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return err
	}
	c.io.Println("✓ Logged out")
	return nil
}

// RunStatus shows the session state and pending sync work
func (c *Cli) RunStatus(ctx context.Context) error {
	status := c.authService.Status(ctx)
	switch {
	case !status.Authenticated:
		c.io.Println("Session:  not authenticated")
	case status.Expired:
		c.io.Println("Session:  expired (renews on next call)")
	default:
		c.io.Println("Session:  active")
	}

	pending, err := c.coordinator.PendingCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read offline queue: %w", err)
	}
	c.io.Printf("Pending:  %d queued change(s)\n", pending)
	return nil
}
