package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/9046balaji/Heart-sub003/internal/models"
)

// RunAdd tracks a new medication. The record shows up immediately; when
// offline it syncs on the next drain.
func (c *Cli) RunAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: add <name> <dose> [schedule]")
	}

	med := models.Medication{
		Name: args[0],
		Dose: args[1],
	}
	if len(args) > 2 {
		med.Schedule = strings.Join(args[2:], " ")
	}

	added, err := c.coordinator.Add(ctx, med)
	if err != nil {
		return err
	}

	if added.Confirmed() {
		c.io.Printf("✓ Added %s %s (%s)\n", added.Name, added.Dose, added.ServerID)
	} else {
		c.io.Printf("✓ Added %s %s (%s, will sync)\n", added.Name, added.Dose, added.LocalID)
	}
	return nil
}

// RunList prints the current medication list
func (c *Cli) RunList(ctx context.Context) error {
	if err := c.coordinator.Load(ctx); err != nil {
		return err
	}

	records := c.coordinator.View().List()
	if len(records) == 0 {
		c.io.Println("No medications tracked.")
		return nil
	}

	for _, med := range records {
		marker := ""
		if !med.Confirmed() {
			marker = " (pending sync)"
		}
		c.io.Printf("%-12s %-20s %-10s %s%s\n", med.Key(), med.Name, med.Dose, med.Schedule, marker)
	}
	return nil
}

// RunRemove stops tracking a medication by id
func (c *Cli) RunRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: rm <id>")
	}

	// The view has to know the record before it can be removed
	if err := c.coordinator.Load(ctx); err != nil {
		return err
	}

	if err := c.coordinator.Remove(ctx, args[0]); err != nil {
		return err
	}
	c.io.Printf("✓ Removed %s\n", args[0])
	return nil
}
