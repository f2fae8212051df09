package cli

import (
	"context"
)

// RunSync drains the offline queue and reports the outcome
func (c *Cli) RunSync(ctx context.Context) error {
	result, err := c.coordinator.Drain(ctx)
	if err != nil {
		return err
	}

	c.io.Println("✓ Sync finished")
	c.io.Printf("Replayed:  %d\n", result.Replayed)
	if result.Dropped > 0 {
		c.io.Printf("Dropped:   %d\n", result.Dropped)
		for _, reportErr := range result.Errors {
			c.io.Printf("  - %v\n", reportErr)
		}
	}
	if result.Remaining > 0 {
		c.io.Printf("Remaining: %d (will retry when connectivity allows)\n", result.Remaining)
	}
	return nil
}
